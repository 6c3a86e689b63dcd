package models

import (
	"testing"

	"github.com/san-kum/oscifit/internal/dynamo"
)

func TestGoodwin_FiniteDerivatives(t *testing.T) {
	m := NewGoodwin()
	for _, s := range []dynamo.State{{0, 0, 0}, {1, 1, 1}, {0.1, 0.2, 2.5}, {100, 100, 100}} {
		if dx := m.Derive(s, 0); !dx.IsValid() {
			t.Errorf("state %v: non-finite derivative %v", s, dx)
		}
	}
}

func TestGoodwin_Validate(t *testing.T) {
	m := NewGoodwin()
	if err := m.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	m.Alpha = -0.1
	if err := m.Validate(); err == nil {
		t.Error("expected domain error for negative alpha")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
	}
	if _, err := New("lorenz"); err == nil {
		t.Error("expected error for unknown model")
	}

	proj, err := Projection("protein")
	if err != nil {
		t.Fatalf("projection lookup failed: %v", err)
	}
	if got := proj(dynamo.State{1, 2, 3}); got != 5 {
		t.Errorf("protein projection: got %g, want 5", got)
	}

	proj, _ = Projection("mrna")
	if got := proj(dynamo.State{1, 2, 3}); got != 1 {
		t.Errorf("mrna projection: got %g, want 1", got)
	}

	if _, err := Projection("phase"); err == nil {
		t.Error("expected error for unknown projection")
	}
}
