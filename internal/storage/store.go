// Package storage persists finished runs so they can be plotted and
// analyzed later. Each run gets a directory under the data dir holding
// metadata.json and series.csv (time, temperature, kinetic energy per
// recorded sample).
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ma3ke/bibber/internal/metrics"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one completed simulation run.
type RunMetadata struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Particles   int                `json:"particles"`
	BoxEdge     float64            `json:"box_edge_m"`
	Timestep    float64            `json:"timestep_s"`
	Duration    float64            `json:"duration_s"`
	Temperature float64            `json:"target_temperature_k"`
	ForceField  string             `json:"force_field"`
	Frames      int                `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the metadata and recorded series, returning the run ID.
func (s *Store) Save(meta RunMetadata, rec *metrics.Recorder) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("run_%d", time.Now().Unix())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time_s", "temperature_k", "kinetic_energy_j"}); err != nil {
		return "", err
	}
	for i := range rec.Times {
		row := []string{
			strconv.FormatFloat(rec.Times[i], 'e', 9, 64),
			strconv.FormatFloat(rec.Temperatures[i], 'e', 9, 64),
			strconv.FormatFloat(rec.Kinetics[i], 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return meta.ID, w.Error()
}

// Load reads the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &meta, nil
}

// LoadSeries reads back the recorded time/temperature/energy series.
func (s *Store) LoadSeries(runID string) (times, temperatures, kinetics []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("storage: %w", err)
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) != 3 {
			return nil, nil, nil, fmt.Errorf("storage: malformed series row %d", i)
		}
		var vals [3]float64
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("storage: row %d: %w", i, err)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		temperatures = append(temperatures, vals[1])
		kinetics = append(kinetics, vals[2])
	}
	return times, temperatures, kinetics, nil
}

// List returns the metadata of all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip partial or foreign directories
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}
