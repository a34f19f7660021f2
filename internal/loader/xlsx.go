package loader

import (
	"context"
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// readXLSX reads the first worksheet; row 1 is the header.
func readXLSX(ctx context.Context, path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}

	header := normalizeHeader(rows[0])
	table := &Table{Columns: nonEmpty(header), Rows: make([]model.RawRow, 0, len(rows)-1)}
	for i, cells := range rows[1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row := rowFromCells(header, cells)
		if len(row) == 0 {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
