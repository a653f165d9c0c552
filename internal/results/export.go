package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Export file names
const (
	ForcesCSV          = "forces_complete.csv"
	CriticalMomentsCSV = "critical_moments.csv"
	CriticalShearsCSV  = "critical_shears.csv"
	Workbook           = "forces.xlsx"
)

// Workbook sheet names
const (
	SheetForces  = "Forces"
	SheetMoments = "Critical Moments"
	SheetShears  = "Critical Shears"
)

// WriteCSV writes the table as Element x Component, empty cells for missing values
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	comps := t.Components()

	if err := cw.Write(append([]string{"Element"}, comps...)); err != nil {
		return err
	}
	for _, id := range t.Elements() {
		rec := make([]string, 0, len(comps)+1)
		rec = append(rec, strconv.Itoa(id))
		for _, comp := range comps {
			v, ok := t.Value(id, comp)
			if !ok {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, formatFloat(v))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the ranking with its max column last
func (r Ranking) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"Element"}, r.Columns...)
	header = append(header, r.MaxColumn)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range r.Rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, strconv.Itoa(row.Element))
		for _, v := range row.Values {
			rec = append(rec, formatFloat(v))
		}
		rec = append(rec, formatFloat(row.Max))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWorkbook saves the full table and both rankings as one xlsx workbook
func WriteWorkbook(path string, t *Table, moments, shears Ranking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetForces); err != nil {
		return err
	}

	comps := t.Components()
	header := make([]interface{}, 0, len(comps)+1)
	header = append(header, "Element")
	for _, c := range comps {
		header = append(header, c)
	}
	if err := setRow(f, SheetForces, 1, header); err != nil {
		return err
	}
	for n, id := range t.Elements() {
		row := make([]interface{}, 0, len(comps)+1)
		row = append(row, id)
		for _, comp := range comps {
			if v, ok := t.Value(id, comp); ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		if err := setRow(f, SheetForces, n+2, row); err != nil {
			return err
		}
	}

	if err := writeRankingSheet(f, SheetMoments, moments); err != nil {
		return err
	}
	if err := writeRankingSheet(f, SheetShears, shears); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeRankingSheet(f *excelize.File, sheet string, r Ranking) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Element"}
	for _, c := range r.Columns {
		header = append(header, c)
	}
	header = append(header, r.MaxColumn)
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for n, rr := range r.Rows {
		row := []interface{}{rr.Element}
		for _, v := range rr.Values {
			if math.IsNaN(v) {
				row = append(row, nil)
			} else {
				row = append(row, v)
			}
		}
		row = append(row, rr.Max)
		if err := setRow(f, sheet, n+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// Exports lists the files written by Export
type Exports struct {
	Forces   string
	Moments  string
	Shears   string
	Workbook string
}

// Export writes the full table, the top-n moment and shear tables, and the
// workbook into dir.
func Export(dir string, t *Table, top int) (Exports, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Exports{}, err
	}
	moments := t.TopMoments(top)
	shears := t.TopShears(top)

	out := Exports{
		Forces:   filepath.Join(dir, ForcesCSV),
		Moments:  filepath.Join(dir, CriticalMomentsCSV),
		Shears:   filepath.Join(dir, CriticalShearsCSV),
		Workbook: filepath.Join(dir, Workbook),
	}

	if err := writeFile(out.Forces, t.WriteCSV); err != nil {
		return out, err
	}
	if err := writeFile(out.Moments, moments.WriteCSV); err != nil {
		return out, err
	}
	if err := writeFile(out.Shears, shears.WriteCSV); err != nil {
		return out, err
	}
	if err := WriteWorkbook(out.Workbook, t, moments, shears); err != nil {
		return out, fmt.Errorf("%s: %w", out.Workbook, err)
	}
	return out, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
