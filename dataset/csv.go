package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Table is a parsed dataset.
type Table struct {
	// Header holds the column names. It is nil when the input was read
	// WithoutHeader.
	Header []string

	// Data holds one point per row.
	Data *mat.Dense
}

// Dims returns the number of rows and columns of the table.
func (t *Table) Dims() (rows, cols int) {
	return t.Data.Dims()
}

// Read parses a delimited table from r.
//
// By default the first row is a header. Fields are trimmed of surrounding
// whitespace and parsed as float64; the first field that fails yields a
// *FormatError carrying its coordinates, and no table is returned.
func Read(r io.Reader, optFns ...Option) (*Table, error) {
	o := applyOptions(optFns)

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &Table{}
	if o.header {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read header: %w", err)
		}
		t.Header = make([]string, len(record))
		for i, name := range record {
			t.Header[i] = strings.TrimSpace(name)
		}
	}

	cols := len(t.Header)
	var values []float64
	rows := 0

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row %d: %w", rows, err)
		}

		if cols == 0 {
			cols = len(record)
		}
		if len(record) != cols {
			return nil, &FormatError{
				Row:   rows,
				Col:   min(len(record), cols),
				Value: strings.Join(record, string(o.delimiter)),
				Err:   fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(record), cols),
			}
		}

		for j, field := range record {
			v, err := parseField(field)
			if err != nil {
				return nil, &FormatError{Row: rows, Col: j, Value: field, Err: err}
			}
			values = append(values, v)
		}
		rows++
	}

	if rows == 0 {
		return nil, ErrNoRows
	}

	t.Data = mat.NewDense(rows, cols, values)
	return t, nil
}

func parseField(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return 0, ne.Err
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// Write writes m to w, one row per line. Values use the shortest
// representation that parses back to the same float64.
func Write(w io.Writer, m mat.Matrix, optFns ...Option) error {
	o := applyOptions(optFns)
	rows, cols := m.Dims()

	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter

	if o.names != nil {
		if len(o.names) != cols {
			return fmt.Errorf("%w: got %d, want %d", ErrHeaderLength, len(o.names), cols)
		}
		if err := cw.Write(o.names); err != nil {
			return fmt.Errorf("dataset: write header: %w", err)
		}
	}

	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := range record {
			record[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("dataset: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
