package trajectory

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/ma3ke/bibber/internal/engine"
)

// FileWriter is a Writer backed by a file, transparently gzip-compressed
// when the filename ends in ".gz".
type FileWriter struct {
	*Writer
	file *os.File
	gz   *gzip.Writer
}

// Create opens path for writing and returns a frame writer for it.
func Create(path, title string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{file: f}
	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		fw.gz = gzip.NewWriter(f)
		w = fw.gz
	}
	fw.Writer = NewWriter(w, title)
	return fw, nil
}

// Close flushes compression state and closes the file.
func (fw *FileWriter) Close() error {
	if fw.gz != nil {
		if err := fw.gz.Close(); err != nil {
			fw.file.Close()
			return err
		}
	}
	return fw.file.Close()
}

var _ engine.Emitter = (*FileWriter)(nil)
