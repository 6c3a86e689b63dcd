package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/oscifit/internal/inference"
)

const historyCapacity = 400

type TickMsg time.Time

type progressMsg inference.Progress

type doneMsg struct {
	result *inference.Result
	err    error
}

// Monitor is the live sampler view: per-chain progress, acceptance rates
// and a rolling log-posterior chart.
type Monitor struct {
	names   []string
	latest  []inference.Progress
	history [][]float64
	start   time.Time
	done    bool
	err     error
	result  *inference.Result
	events  <-chan inference.Progress
	final   <-chan doneMsg
}

func newMonitor(names []string, chains int, events <-chan inference.Progress, final <-chan doneMsg) Monitor {
	return Monitor{
		names:   names,
		latest:  make([]inference.Progress, chains),
		history: make([][]float64, chains),
		start:   time.Now(),
		events:  events,
		final:   final,
	}
}

func (m Monitor) Init() tea.Cmd {
	return tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case TickMsg:
		m.drain()
		if m.done {
			return m, tea.Quit
		}
		return m, tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// drain consumes every pending event without blocking the UI loop.
func (m *Monitor) drain() {
	for {
		select {
		case ev := <-m.events:
			if ev.Chain < len(m.latest) {
				m.latest[ev.Chain] = ev
				m.history[ev.Chain] = append(m.history[ev.Chain], ev.LogPost)
				if len(m.history[ev.Chain]) > historyCapacity {
					m.history[ev.Chain] = m.history[ev.Chain][1:]
				}
			}
		case d := <-m.final:
			m.result = d.result
			m.err = d.err
			m.done = true
			return
		default:
			return
		}
	}
}

func (m Monitor) View() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("oscifit: sampling posterior") + "\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("elapsed %s, params %s",
		time.Since(m.start).Round(time.Second), strings.Join(m.names, ", "))) + "\n\n")

	for ci, ev := range m.latest {
		pct := 0.0
		if ev.Total > 0 {
			pct = float64(ev.Iter) / float64(ev.Total)
		}
		s.WriteString(fmt.Sprintf("chain %d  %s %5.1f%%  accept %.2f  logpost %.2f\n",
			ci, ProgressBar(pct, 30), 100*pct, ev.AcceptRate, ev.LogPost))
	}

	if len(m.latest) == 0 {
		s.WriteString("\n" + Subtle.Render("waiting for chains") + "\n")
		return s.String()
	}

	if theta := m.latest[0].Theta; len(theta) == len(m.names) {
		s.WriteString("\n")
		for i, name := range m.names {
			s.WriteString(fmt.Sprintf("  %-8s %.6g\n", name, theta[i]))
		}
	}

	if hist := m.history[0]; len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(6),
			asciigraph.Width(60),
			asciigraph.Caption("log posterior (chain 0)"),
		)
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString("\n" + Subtle.Render("q to abort") + "\n")
	return s.String()
}

// RunLive drives a sampler under the live monitor and returns its result.
// The sampler's Progress hook is replaced for the duration of the run.
func RunLive(ctx context.Context, sampler *inference.MH) (*inference.Result, error) {
	events := make(chan inference.Progress, 256)
	final := make(chan doneMsg, 1)

	if sampler.ReportEvery <= 0 {
		sampler.ReportEvery = 25
	}
	sampler.Progress = func(p inference.Progress) {
		select {
		case events <- p:
		default:
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		res, err := sampler.Run(ctx)
		final <- doneMsg{result: res, err: err}
	}()

	names := make([]string, len(sampler.Model.Params))
	for i, p := range sampler.Model.Params {
		names[i] = p.Name
	}
	model := newMonitor(names, sampler.Chains, events, final)
	prog := tea.NewProgram(model)
	out, err := prog.Run()
	if err != nil {
		cancel()
		return nil, err
	}

	mon := out.(Monitor)
	if !mon.done {
		// User quit the view; stop the sampler and wait for it.
		cancel()
		<-final
		return nil, nil
	}
	return mon.result, mon.err
}
