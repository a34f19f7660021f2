package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidinho/dash-leishmaniose/internal/model"
	"github.com/tidinho/dash-leishmaniose/internal/parser"
)

// Format snapshot file format.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
)

var (
	// ErrMissingColumns matches any *MissingColumnsError.
	ErrMissingColumns = errors.New("snapshot missing required columns")
	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
)

// MissingColumnsError lists required columns absent from a snapshot.
type MissingColumnsError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrMissingColumns, e.Path, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Table raw snapshot contents.
type Table struct {
	Format  Format
	Columns []string
	Rows    []model.RawRow
}

// Records normalizes every row.
func (t *Table) Records() []model.CaseRecord {
	return parser.NormalizeAll(t.Rows)
}

// HasColumn reports whether the table carries col.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// DetectFormat picks the reader from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

// Load reads a snapshot file and validates its schema once.
func Load(ctx context.Context, path string) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var table *Table
	switch format {
	case FormatParquet:
		table, err = readParquet(ctx, path)
	case FormatXLSX:
		table, err = readXLSX(ctx, path)
	case FormatCSV:
		table, err = readCSV(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s snapshot: %w", format, err)
	}
	table.Format = format

	if err := Validate(path, table.Columns); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that every required column is present.
func Validate(path string, columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	var missing []string
	for _, c := range model.RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Path: filepath.Base(path), Columns: missing}
	}
	return nil
}

// rowFromCells maps header names to non-empty cells.
func rowFromCells(header, cells []string) model.RawRow {
	row := make(model.RawRow, len(header))
	for i, col := range header {
		if col == "" || i >= len(cells) {
			continue
		}
		v := strings.TrimSpace(cells[i])
		if v == "" {
			continue
		}
		row[col] = v
	}
	return row
}

func normalizeHeader(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = parser.NormalizeColumnName(c)
	}
	return out
}

func nonEmpty(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
