package storage

import (
	"math"
	"testing"

	"github.com/ma3ke/bibber/internal/metrics"
)

func testRecorder() *metrics.Recorder {
	return &metrics.Recorder{
		Stride:       1,
		Times:        []float64{0, 1e-14, 2e-14},
		Temperatures: []float64{0, 150.5, 299.9},
		Kinetics:     []float64{0, 1e-20, 2e-20},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	meta := RunMetadata{
		ID:          "run_test",
		Title:       "My universe",
		Seed:        42,
		Particles:   100,
		BoxEdge:     1e-7,
		Timestep:    1e-14,
		Duration:    1e-11,
		Temperature: 300,
		ForceField:  "lj",
		Frames:      11,
		Metrics:     map[string]float64{"mean_temperature": 123.4},
	}

	id, err := st.Save(meta, testRecorder())
	if err != nil {
		t.Fatal(err)
	}
	if id != "run_test" {
		t.Errorf("expected explicit id to be kept, got %s", id)
	}

	loaded, err := st.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Title != meta.Title || loaded.Particles != meta.Particles {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Metrics["mean_temperature"] != 123.4 {
		t.Errorf("metrics not preserved: %v", loaded.Metrics)
	}

	times, temps, kes, err := st.LoadSeries(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 3 || len(temps) != 3 || len(kes) != 3 {
		t.Fatalf("series lengths: %d %d %d", len(times), len(temps), len(kes))
	}
	if math.Abs(temps[1]-150.5) > 1e-6 {
		t.Errorf("temperature round trip: got %g", temps[1])
	}
	if math.Abs(kes[2]-2e-20) > 1e-28 {
		t.Errorf("kinetic energy round trip: got %g", kes[2])
	}
}

func TestGeneratedID(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	id, err := st.Save(RunMetadata{Title: "x"}, testRecorder())
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if runs, err := st.List(); err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", runs, err)
	}

	for _, id := range []string{"a", "b"} {
		if _, err := st.Save(RunMetadata{ID: id, Title: id}, testRecorder()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/path/for/test")
	runs, err := st.List()
	if err != nil || runs != nil {
		t.Errorf("missing base dir should list empty, got %v (%v)", runs, err)
	}
}
