package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Exporter renders a Report in one output format.
type Exporter interface {
	Export(w io.Writer, rep *Report) error
	Format() string
	// Extension is the file extension used when the output is written to disk.
	Extension() string
	// Binary reports whether the output is unfit for a terminal.
	Binary() bool
}

// Registry holds named exporters.
type Registry struct {
	exporters map[string]Exporter
	order     []string
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter. Panics on duplicate format.
func (r *Registry) Register(e Exporter) {
	key := strings.ToLower(e.Format())
	if _, ok := r.exporters[key]; ok {
		panic("duplicate export format: " + key)
	}
	r.exporters[key] = e
	r.order = append(r.order, key)
}

// Get returns the exporter for format, or nil.
func (r *Registry) Get(format string) Exporter {
	return r.exporters[strings.ToLower(format)]
}

// Formats lists registered formats in registration order.
func (r *Registry) Formats() []string {
	return append([]string(nil), r.order...)
}

// DefaultRegistry returns a registry with all built-in exporters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TableExporter{})
	r.Register(&JSONExporter{})
	r.Register(&XLSXExporter{})
	r.Register(&PDFExporter{})
	return r
}

// FileName returns "<prefix>_YYYY-MM-DD.<ext>".
func FileName(prefix, ext string, date time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, date.Format(time.DateOnly), strings.ToLower(ext))
}

// WriteFile renders rep into dir/name, creating dir if needed, and returns
// the written path.
func WriteFile(dir, name string, e Exporter, rep *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	if err := e.Export(f, rep); err != nil {
		f.Close()
		return "", fmt.Errorf("exporting %s: %w", e.Format(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return path, nil
}
