package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/inference"
)

// Store keeps every run in its own directory under baseDir: metadata.json
// plus trajectory.csv for simulation runs or samples.csv for fit runs.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type DiagnosticMeta struct {
	Name string  `json:"name"`
	RHat float64 `json:"rhat"`
	ESS  float64 `json:"ess"`
}

type SamplerMeta struct {
	Iterations  int       `json:"iterations"`
	BurnIn      int       `json:"burnIn"`
	Thin        int       `json:"thin"`
	Chains      int       `json:"chains"`
	AcceptRates []float64 `json:"acceptRates,omitempty"`
}

type RunMetadata struct {
	ID          string           `json:"id"`
	Kind        string           `json:"kind"` // "simulate" or "fit"
	Model       string           `json:"model"`
	Timestamp   time.Time        `json:"timestamp"`
	Seed        int64            `json:"seed"`
	Integrator  string           `json:"integrator"`
	Projection  string           `json:"projection,omitempty"`
	Start       float64          `json:"start"`
	End         float64          `json:"end"`
	OutStep     float64          `json:"outStep"`
	Sampler     *SamplerMeta     `json:"sampler,omitempty"`
	Diagnostics []DiagnosticMeta `json:"diagnostics,omitempty"`
}

func (s *Store) runDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func (s *Store) writeMeta(meta RunMetadata) error {
	f, err := os.Create(filepath.Join(s.runDir(meta.ID), "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// SaveTrajectory stores a simulation run and returns its run id.
func (s *Store) SaveTrajectory(meta RunMetadata, tr *dynamo.Trajectory) (string, error) {
	meta.ID = fmt.Sprintf("%s_sim_%d", meta.Model, time.Now().UnixNano())
	meta.Kind = "simulate"
	meta.Timestamp = time.Now()

	if err := os.MkdirAll(s.runDir(meta.ID), 0755); err != nil {
		return "", err
	}
	if err := s.writeMeta(meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.runDir(meta.ID), "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if tr.Len() == 0 {
		return meta.ID, nil
	}

	header := []string{"time"}
	for i := range tr.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range tr.States {
		row := []string{strconv.FormatFloat(tr.Times[i], 'g', -1, 64)}
		for _, v := range tr.States[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

// SaveFit stores a sampler run: one samples.csv row per kept draw, tagged
// with its chain and log posterior.
func (s *Store) SaveFit(meta RunMetadata, res *inference.Result) (string, error) {
	meta.ID = fmt.Sprintf("%s_fit_%d", meta.Model, time.Now().UnixNano())
	meta.Kind = "fit"
	meta.Timestamp = time.Now()

	for _, d := range res.Diagnostics() {
		meta.Diagnostics = append(meta.Diagnostics, DiagnosticMeta{Name: d.Name, RHat: d.RHat, ESS: d.ESS})
	}
	if meta.Sampler != nil {
		for _, c := range res.Chains {
			meta.Sampler.AcceptRates = append(meta.Sampler.AcceptRates, c.AcceptRate)
		}
	}

	if err := os.MkdirAll(s.runDir(meta.ID), 0755); err != nil {
		return "", err
	}
	if err := s.writeMeta(meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.runDir(meta.ID), "samples.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"chain"}, res.Names...)
	header = append(header, "log_post")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for ci, chain := range res.Chains {
		for di, draw := range chain.Draws {
			row := make([]string, 0, len(draw)+2)
			row = append(row, strconv.Itoa(ci))
			for _, v := range draw {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			row = append(row, strconv.FormatFloat(chain.LogPost[di], 'g', -1, 64))
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return meta.ID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(runID), "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, error) {
	records, err := readCSV(filepath.Join(s.runDir(runID), "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &dynamo.Trajectory{}, nil
	}

	tr := &dynamo.Trajectory{
		Times:  make([]float64, 0, len(records)-1),
		States: make([]dynamo.State, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad trajectory row: %w", err)
		}
		state := make(dynamo.State, len(rec)-1)
		for j, field := range rec[1:] {
			if state[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("storage: bad trajectory row: %w", err)
			}
		}
		tr.Times = append(tr.Times, t)
		tr.States = append(tr.States, state)
	}
	return tr, nil
}

// LoadSamples reads a fit run back as the flat sample set the aggregator
// consumes. The chain and log_post columns are dropped.
func (s *Store) LoadSamples(runID string) (*inference.SampleSet, error) {
	records, err := readCSV(filepath.Join(s.runDir(runID), "samples.csv"))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: run %s has no samples", runID)
	}

	header := records[0]
	if len(header) < 3 || header[0] != "chain" || header[len(header)-1] != "log_post" {
		return nil, fmt.Errorf("storage: run %s has an unexpected samples header", runID)
	}
	names := header[1 : len(header)-1]

	set := &inference.SampleSet{
		Names: append([]string(nil), names...),
		Draws: make([][]float64, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("storage: run %s has a ragged samples row", runID)
		}
		draw := make([]float64, len(names))
		for j := range names {
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad sample value: %w", err)
			}
			draw[j] = v
		}
		set.Draws = append(set.Draws, draw)
	}
	return set, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
