package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// CSVWriter streams samples as CSV, writing the header before the first row.
type CSVWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewCSVWriter writes samples to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// CreateCSV creates (or truncates) the file at path and its parent directories.
// Returns nil if path is empty (output disabled).
func CreateCSV(path string) (*CSVWriter, error) {
	if path == "" {
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVWriter{w: f, closer: f}, nil
}

// Write appends samples.
func (cw *CSVWriter) Write(samples ...Sample) error {
	if cw == nil || len(samples) == 0 {
		return nil
	}

	if !cw.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(samples, cw.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		cw.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(samples, cw.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the writer owns one.
// Closing twice is a no-op.
func (cw *CSVWriter) Close() error {
	if cw == nil || cw.closer == nil {
		return nil
	}
	err := cw.closer.Close()
	cw.closer = nil
	return err
}
