package invoice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/finsum/internal/model"
)

// Header is the CSV header for line item files.
const Header = "description,quantity,unit_price,tax_rate"

const (
	numFields  = 4
	colDesc    = 0
	colQty     = 1
	colPrice   = 2
	colTaxRate = 3
)

// itemFields mirrors model.LineItem with every field optional, so an absent
// value can be told apart from a zero one.
type itemFields struct {
	Description *string  `json:"description" yaml:"description" validate:"required"`
	Quantity    *int     `json:"quantity" yaml:"quantity" validate:"required"`
	UnitPrice   *float64 `json:"unit_price" yaml:"unit_price" validate:"required"`
	TaxRate     *float64 `json:"tax_rate" yaml:"tax_rate" validate:"required"`
}

func (f itemFields) resolve(index int) (model.LineItem, error) {
	if err := model.Require("line item", index, f); err != nil {
		return model.LineItem{}, err
	}
	return model.LineItem{
		Description: *f.Description,
		Quantity:    *f.Quantity,
		UnitPrice:   *f.UnitPrice,
		TaxRate:     *f.TaxRate,
	}, nil
}

// ReadItems reads line items from CSV. A blank cell is a missing field and
// yields a *model.MissingFieldError.
func ReadItems(r io.Reader) ([]model.LineItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading items CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var items []model.LineItem
	for i, rec := range records[1:] {
		item, err := UnmarshalItem(i, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteItems writes line items as CSV, including the header.
func WriteItems(w io.Writer, items []model.LineItem) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range items {
		if err := cw.Write(MarshalItem(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalItem converts a LineItem to a CSV row.
func MarshalItem(item model.LineItem) []string {
	row := make([]string, numFields)
	row[colDesc] = item.Description
	row[colQty] = strconv.Itoa(item.Quantity)
	row[colPrice] = strconv.FormatFloat(item.UnitPrice, 'f', -1, 64)
	row[colTaxRate] = strconv.FormatFloat(item.TaxRate, 'f', -1, 64)
	return row
}

// UnmarshalItem converts the CSV row of item index to a LineItem.
func UnmarshalItem(index int, record []string) (model.LineItem, error) {
	if len(record) != numFields {
		return model.LineItem{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var f itemFields
	if s := record[colDesc]; s != "" {
		f.Description = &s
	}
	if s := strings.TrimSpace(record[colQty]); s != "" {
		qty, err := strconv.Atoi(s)
		if err != nil {
			return model.LineItem{}, fmt.Errorf("parsing quantity %q: %w", s, err)
		}
		f.Quantity = &qty
	}
	var err error
	if f.UnitPrice, err = optionalFloat("unit_price", record[colPrice]); err != nil {
		return model.LineItem{}, err
	}
	if f.TaxRate, err = optionalFloat("tax_rate", record[colTaxRate]); err != nil {
		return model.LineItem{}, err
	}
	return f.resolve(index)
}

func optionalFloat(name, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", name, s, err)
	}
	return &v, nil
}

type itemsDocument struct {
	Items []itemFields `yaml:"items"`
}

// ReadItemsYAML reads line items from a YAML document of the form
//
//	items:
//	  - description: Laptop
//	    quantity: 2
//	    unit_price: 3000
//	    tax_rate: 0.19
func ReadItemsYAML(r io.Reader) ([]model.LineItem, error) {
	var doc itemsDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing items YAML: %w", err)
	}

	items := make([]model.LineItem, 0, len(doc.Items))
	for i, f := range doc.Items {
		item, err := f.resolve(i)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteItemsYAML writes line items in the format read by ReadItemsYAML.
func WriteItemsYAML(w io.Writer, items []model.LineItem) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Items []model.LineItem `yaml:"items"`
	}{items}); err != nil {
		return fmt.Errorf("encoding items YAML: %w", err)
	}
	return enc.Close()
}
