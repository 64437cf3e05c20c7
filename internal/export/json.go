package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONExporter renders a report as an indented JSON document. Row and totals
// objects keep column order.
type JSONExporter struct{}

// Format returns the exporter name.
func (e *JSONExporter) Format() string { return "json" }

// Extension returns the file extension.
func (e *JSONExporter) Extension() string { return "json" }

// Binary reports false.
func (e *JSONExporter) Binary() bool { return false }

type jsonDocument struct {
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Rows        []orderedObject `json:"rows"`
	Totals      *orderedObject  `json:"totals,omitempty"`
}

// Export writes the document followed by a newline.
func (e *JSONExporter) Export(w io.Writer, rep *Report) error {
	doc := jsonDocument{
		Title:       rep.Title,
		GeneratedAt: rep.GeneratedAt,
		Rows:        make([]orderedObject, 0, len(rep.Rows)),
	}
	for _, row := range rep.Rows {
		obj := orderedObject{}
		for j, c := range rep.Columns {
			var v any
			if j < len(row) {
				v = row[j]
			}
			obj.set(c.Key, v)
		}
		doc.Rows = append(doc.Rows, obj)
	}
	if len(rep.Totals) > 0 {
		totals := orderedObject{}
		for _, t := range rep.Totals {
			totals.set(t.Key, t.Value)
		}
		doc.Totals = &totals
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// orderedObject marshals as a JSON object with keys in insertion order.
type orderedObject struct {
	keys   []string
	values []any
}

func (o *orderedObject) set(key string, v any) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
