// Package records loads per-year company figures from CSV.
package records

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/finsum/internal/model"
)

// Header is the canonical CSV header. Readers locate columns by name, so
// input files may order them differently or carry extra columns.
const Header = "company,year,revenue,profit"

const (
	colCompany = "company"
	colYear    = "year"
	colRevenue = "revenue"
	colProfit  = "profit"
)

var columns = []string{colCompany, colYear, colRevenue, colProfit}

// MissingPolicy decides what happens to a row with a blank or unparseable cell.
type MissingPolicy string

const (
	// PolicyDrop skips incomplete rows and reports them in Result.Dropped.
	PolicyDrop MissingPolicy = "drop"
	// PolicyFail aborts on the first incomplete row with a *model.MissingFieldError.
	PolicyFail MissingPolicy = "fail"
)

// ParsePolicy validates a policy name. The empty string means PolicyDrop.
func ParsePolicy(s string) (MissingPolicy, error) {
	switch MissingPolicy(s) {
	case "", PolicyDrop:
		return PolicyDrop, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", fmt.Errorf("unknown missing-value policy %q (want %s or %s)", s, PolicyDrop, PolicyFail)
	}
}

// DroppedRow identifies an incomplete row left out of the result.
type DroppedRow struct {
	Row     int // 1-based file line; the header is row 1
	Missing []string
}

// Result is the outcome of ReadRecords.
type Result struct {
	Records []model.FinancialRecord
	Dropped []DroppedRow
}

// ReadRecords reads financial records from CSV. Cells that are blank or do not
// parse as numbers count as missing and are handled according to policy.
func ReadRecords(ctx context.Context, r io.Reader, policy MissingPolicy) (Result, error) {
	logger := zerolog.Ctx(ctx)

	cr := csv.NewReader(r)
	// Short rows are read as having blank trailing cells.
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading records CSV: %w", err)
	}
	if len(rows) == 0 {
		return Result{}, nil
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i, row := range rows[1:] {
		rec, missing := UnmarshalRecord(index, row)
		if len(missing) == 0 {
			res.Records = append(res.Records, rec)
			continue
		}
		if policy == PolicyFail {
			return Result{}, fmt.Errorf("row %d: %w", i+2, &model.MissingFieldError{
				Entity: "record",
				Index:  i,
				Field:  missing[0],
			})
		}
		logger.Warn().
			Int("row", i+2).
			Strs("missing", missing).
			Msg("dropping incomplete record")
		res.Dropped = append(res.Dropped, DroppedRow{Row: i + 2, Missing: missing})
	}

	logger.Debug().
		Int("records", len(res.Records)).
		Int("dropped", len(res.Dropped)).
		Msg("loaded records")
	return res, nil
}

// WriteRecords writes records as CSV, including the header.
func WriteRecords(w io.Writer, recs []model.FinancialRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range recs {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a record to a CSV row in Header order.
func MarshalRecord(rec model.FinancialRecord) []string {
	return []string{
		rec.Company,
		strconv.Itoa(rec.Year),
		strconv.FormatFloat(rec.Revenue, 'f', -1, 64),
		strconv.FormatFloat(rec.Profit, 'f', -1, 64),
	}
}

// UnmarshalRecord converts a CSV row to a record using a column index built
// from the header. It returns the names of the columns that were missing.
func UnmarshalRecord(index map[string]int, row []string) (model.FinancialRecord, []string) {
	var rec model.FinancialRecord
	var missing []string

	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec.Company = cell(colCompany)
	if rec.Company == "" {
		missing = append(missing, colCompany)
	}

	year, ok := parseYear(cell(colYear))
	if !ok {
		missing = append(missing, colYear)
	}
	rec.Year = year

	if rec.Revenue, ok = parseAmount(cell(colRevenue)); !ok {
		missing = append(missing, colRevenue)
	}
	if rec.Profit, ok = parseAmount(cell(colProfit)); !ok {
		missing = append(missing, colProfit)
	}
	return rec, missing
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if i == 0 {
			key = strings.TrimPrefix(key, "\ufeff")
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	var absent []string
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			absent = append(absent, col)
		}
	}
	if len(absent) > 0 {
		return nil, errors.New("records CSV missing column(s): " + strings.Join(absent, ", "))
	}
	return index, nil
}

// parseYear accepts integers and integral floats such as "2023.0".
func parseYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, ok := parseAmount(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// parseAmount rejects NaN and infinities along with unparseable text.
func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
