package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/filter"
)

// Sheet names, in workbook order.
const (
	SheetSummary      = "Resumo"
	SheetStates       = "Casos por UF"
	SheetTop          = "Top municipios"
	SheetMap          = "Mapa"
	SheetHeat         = "Heatmap"
	SheetIndicators   = "Indicadores"
	SheetFilters      = "Filtros"
	defaultFirstSheet = "Sheet1"
)

// Meta describes the data behind an export.
type Meta struct {
	SnapshotID  string
	SnapshotAt  time.Time
	GeneratedAt time.Time
	Selection   filter.Selection
}

// Exporter writes dashboard views to xlsx.
type Exporter struct {
	headerStyle int
}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds a workbook with one sheet per view.
func (e *Exporter) Export(d aggregate.Dashboard, meta Meta, progress func(ProgressEvent)) (*excelize.File, error) {
	f := excelize.NewFile()

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	e.headerStyle = style

	steps := []struct {
		name string
		fill func(*excelize.File, string) error
	}{
		{SheetSummary, func(f *excelize.File, s string) error { return e.writeSummary(f, s, d.Summary) }},
		{SheetStates, func(f *excelize.File, s string) error { return e.writeStates(f, s, d.ByState) }},
		{SheetTop, func(f *excelize.File, s string) error { return e.writeTop(f, s, d.TopMunicipalities) }},
		{SheetMap, func(f *excelize.File, s string) error { return e.writeMap(f, s, d.MapPoints) }},
		{SheetHeat, func(f *excelize.File, s string) error { return e.writeHeat(f, s, d.Heatmap) }},
		{SheetIndicators, func(f *excelize.File, s string) error { return e.writeIndicators(f, s, d) }},
		{SheetFilters, func(f *excelize.File, s string) error { return e.writeFilters(f, s, meta) }},
	}

	for i, step := range steps {
		if i == 0 {
			if err := f.SetSheetName(defaultFirstSheet, step.name); err != nil {
				_ = f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(step.name); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := step.fill(f, step.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("fill sheet %s: %w", step.name, err)
		}
		reportProgress(progress, (i+1)*100/len(steps), step.name)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteTo exports into w.
func (e *Exporter) WriteTo(w io.Writer, d aggregate.Dashboard, meta Meta) error {
	f, err := e.Export(d, meta, nil)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveAs exports into a file.
func (e *Exporter) SaveAs(path string, d aggregate.Dashboard, meta Meta) error {
	f, err := e.Export(d, meta, nil)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func (e *Exporter) writeTable(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, e.headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeSummary(f *excelize.File, sheet string, s aggregate.Summary) error {
	rows := make([][]interface{}, 0, 3)
	for _, m := range s.Metrics() {
		rows = append(rows, []interface{}{m.Name, m.Value})
	}
	return e.writeTable(f, sheet, []string{"Indicador", "Valor"}, rows)
}

func (e *Exporter) writeStates(f *excelize.File, sheet string, states []aggregate.StateTotal) error {
	rows := make([][]interface{}, 0, len(states))
	for _, s := range states {
		rows = append(rows, []interface{}{s.State, s.Cases})
	}
	return e.writeTable(f, sheet, []string{"sigla_uf", "casos"}, rows)
}

func (e *Exporter) writeTop(f *excelize.File, sheet string, top []aggregate.MunicipalityTotal) error {
	rows := make([][]interface{}, 0, len(top))
	for _, m := range top {
		rows = append(rows, []interface{}{m.Municipality, m.State, m.Cases})
	}
	return e.writeTable(f, sheet, []string{"nm_mun", "sigla_uf", "casos"}, rows)
}

func (e *Exporter) writeMap(f *excelize.File, sheet string, points []aggregate.MapPoint) error {
	rows := make([][]interface{}, 0, len(points))
	for _, p := range points {
		rows = append(rows, []interface{}{p.Municipality, p.Latitude, p.Longitude, p.Cases, p.Radius})
	}
	return e.writeTable(f, sheet, []string{"nm_mun", "lat_locali", "long_local", "casos", "raio"}, rows)
}

func (e *Exporter) writeHeat(f *excelize.File, sheet string, h aggregate.Heatmap) error {
	rows := make([][]interface{}, 0, len(h.Points))
	for _, p := range h.Points {
		rows = append(rows, []interface{}{p.Latitude, p.Longitude, p.Weight})
	}
	if err := e.writeTable(f, sheet, []string{"lat_locali", "long_local", "peso"}, rows); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "E1", "raio"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "F1", h.Settings.Radius); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "E2", "blur"); err != nil {
		return err
	}
	return f.SetCellValue(sheet, "F2", h.Settings.Blur)
}

func optional(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func (e *Exporter) writeIndicators(f *excelize.File, sheet string, d aggregate.Dashboard) error {
	rows := make([][]interface{}, 0, len(d.IndicatorTable))
	for _, r := range d.IndicatorTable {
		rows = append(rows, []interface{}{
			r.Municipality, r.Cases,
			optional(r.HDI), optional(r.Sanitation), optional(r.Income), optional(r.Precipitation),
		})
	}
	header := []string{"nm_mun", "casos", "idh", "saneamento", "renda", "precipitacao"}
	if err := e.writeTable(f, sheet, header, rows); err != nil {
		return err
	}

	c := d.Correlation
	notes := [][]interface{}{
		{"indicador", c.Label},
		{"pearson", optional(c.Pearson)},
	}
	if c.Trend != nil {
		notes = append(notes,
			[]interface{}{"tendencia_intercepto", c.Trend.Intercept},
			[]interface{}{"tendencia_inclinacao", c.Trend.Slope},
			[]interface{}{"tendencia_r2", c.Trend.RSquared},
		)
	}
	for i, n := range notes {
		cell, err := excelize.CoordinatesToCellName(len(header)+2, i+1)
		if err != nil {
			return err
		}
		row := n
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func orAll(s string) string {
	if s == "" {
		return "(todos)"
	}
	return s
}

func (e *Exporter) writeFilters(f *excelize.File, sheet string, meta Meta) error {
	sel := meta.Selection
	rows := [][]interface{}{
		{"uf", orAll(strings.Join(sel.States, ", "))},
		{"municipio", orAll(strings.Join(sel.Municipalities, ", "))},
		{"unidade", orAll(strings.Join(sel.Facilities, ", "))},
		{"ano", orAll(joinInts(sel.Years))},
		{"snapshot", meta.SnapshotID},
	}
	if !meta.SnapshotAt.IsZero() {
		rows = append(rows, []interface{}{"carregado_em", meta.SnapshotAt.Format(time.RFC3339)})
	}
	if !meta.GeneratedAt.IsZero() {
		rows = append(rows, []interface{}{"gerado_em", meta.GeneratedAt.Format(time.RFC3339)})
	}
	return e.writeTable(f, sheet, []string{"filtro", "valor"}, rows)
}

// WriteDashboard writes the dashboard workbook into w.
func WriteDashboard(w io.Writer, d aggregate.Dashboard, meta Meta) error {
	return NewExporter().WriteTo(w, d, meta)
}

// SaveDashboard writes the dashboard workbook to path.
func SaveDashboard(path string, d aggregate.Dashboard, meta Meta) error {
	return NewExporter().SaveAs(path, d, meta)
}
