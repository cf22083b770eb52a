package trajectory

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/ma3ke/bibber/internal/engine"
	"github.com/ma3ke/bibber/internal/geom"
	"github.com/ma3ke/bibber/internal/unit"
)

func frame(t unit.Time) engine.Snapshot {
	return engine.Snapshot{
		Time: t,
		Positions: []geom.Vec3{
			geom.V(1e-9, 2e-9, 3e-9),
			geom.V(50e-9, 60e-9, 70e-9),
		},
		Velocities: []geom.Vec3{
			geom.V(1000, -2000, 3000),
			geom.V(0, 0, 0),
		},
		Box: geom.V(1e-7, 1e-7, 1e-7),
	}
}

func TestGROLayout(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb, "My universe")

	if err := w.Emit(frame(unit.Picoseconds(1))); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), sb.String())
	}
	if lines[0] != "My universe, t= 1" {
		t.Errorf("header: %q", lines[0])
	}
	if lines[1] != "2" {
		t.Errorf("count: %q", lines[1])
	}
	// 1 nm positions, 1000 m/s = 1 km/s velocities, fixed-width fields.
	want := "    0DUMMY  DUM    0   1.000   2.000   3.000  1.0000 -2.0000  3.0000"
	if lines[2] != want {
		t.Errorf("particle line:\n got %q\nwant %q", lines[2], want)
	}
	if lines[3] != "0.0000001 0.0000001 0.0000001" {
		t.Errorf("box line: %q", lines[3])
	}
}

func TestFrameCount(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb, "x")
	for i := 0; i < 5; i++ {
		if err := w.Emit(frame(unit.Picoseconds(float64(i)))); err != nil {
			t.Fatal(err)
		}
	}
	if w.Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", w.Frames())
	}
	if got := strings.Count(sb.String(), "x, t= "); got != 5 {
		t.Errorf("expected 5 headers, got %d", got)
	}
}

func TestFileWriterPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gro")
	fw, err := Create(path, "run")
	if err != nil {
		t.Fatal(err)
	}
	if err := fw.Emit(frame(0)); err != nil {
		t.Fatal(err)
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "run, t= 0\n2\n") {
		t.Errorf("unexpected file contents: %q", string(data[:20]))
	}
}

func TestFileWriterGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gro.gz")
	fw, err := Create(path, "run")
	if err != nil {
		t.Fatal(err)
	}
	if err := fw.Emit(frame(0)); err != nil {
		t.Fatal(err)
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "run, t= 0\n") {
		t.Errorf("unexpected decompressed contents: %q", string(data[:10]))
	}
}
