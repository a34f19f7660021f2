package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"

	"github.com/tidinho/dash-leishmaniose/internal/model"
	"github.com/tidinho/dash-leishmaniose/internal/parser"
)

const parquetBatchSize = 512

type parquetColumn struct {
	name    string
	logical *format.LogicalType
}

func readParquet(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	schema := pf.Schema()
	columns := make(map[int]parquetColumn)
	var names []string
	for _, colPath := range schema.Columns() {
		leaf, ok := schema.Lookup(colPath...)
		if !ok {
			continue
		}
		name := parser.NormalizeColumnName(strings.Join(colPath, "."))
		columns[leaf.ColumnIndex] = parquetColumn{
			name:    name,
			logical: leaf.Node.Type().LogicalType(),
		}
		names = append(names, name)
	}

	table := &Table{Columns: names, Rows: make([]model.RawRow, 0, pf.NumRows())}
	buf := make([]parquet.Row, parquetBatchSize)

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			if err := ctx.Err(); err != nil {
				rows.Close()
				return nil, err
			}
			n, err := rows.ReadRows(buf)
			for _, r := range buf[:n] {
				raw := make(model.RawRow, len(columns))
				for _, v := range r {
					col, ok := columns[v.Column()]
					if !ok {
						continue
					}
					if s, ok := parquetValueString(v, col.logical); ok {
						raw[col.name] = s
					}
				}
				table.Rows = append(table.Rows, raw)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// parquetValueString renders a cell the way a dataframe casts it to string.
func parquetValueString(v parquet.Value, lt *format.LogicalType) (string, bool) {
	if v.IsNull() {
		return "", false
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean()), true
	case parquet.Int32:
		if lt != nil && lt.Date != nil {
			return time.Unix(int64(v.Int32())*86400, 0).UTC().Format("2006-01-02"), true
		}
		return strconv.FormatInt(int64(v.Int32()), 10), true
	case parquet.Int64:
		if lt != nil && lt.Timestamp != nil {
			return timestampString(v.Int64(), lt.Timestamp.Unit), true
		}
		return strconv.FormatInt(v.Int64(), 10), true
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32), true
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64), true
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray()), true
	}
	return v.String(), true
}

func timestampString(n int64, unit format.TimeUnit) string {
	var t time.Time
	switch {
	case unit.Nanos != nil:
		t = time.Unix(0, n)
	case unit.Micros != nil:
		t = time.UnixMicro(n)
	default:
		t = time.UnixMilli(n)
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
