package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads a results table, picking the reader from the file extension
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		t, err := ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ReadCSV reads a results table in either long or wide layout
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// LoadXLSX reads the first sheet of a workbook in either long or wide layout
func LoadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// fromRows detects the layout from the header row.
//
//	long: Element, Component, forces
//	wide: Element, Mz_i, Mz_j, ...
func fromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty results table")
	}
	header := rows[0]
	elemCol, compCol, valueCol := -1, -1, -1
	for k, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "element":
			elemCol = k
		case "component":
			compCol = k
		case "forces", "value":
			valueCol = k
		}
	}
	if elemCol < 0 {
		return nil, fmt.Errorf("results header has no Element column: %v", header)
	}
	if compCol >= 0 {
		if valueCol < 0 {
			return nil, fmt.Errorf("results header has a Component column but no forces column: %v", header)
		}
		return fromLongRows(rows[1:], elemCol, compCol, valueCol)
	}
	return fromWideRows(header, rows[1:], elemCol)
}

func fromLongRows(rows [][]string, elemCol, compCol, valueCol int) (*Table, error) {
	t := NewTable()
	for n, row := range rows {
		line := n + 2
		if isBlank(row) {
			continue
		}
		if len(row) <= elemCol || len(row) <= compCol {
			return nil, fmt.Errorf("line %d: short row", line)
		}
		id, err := parseElement(row[elemCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		comp := strings.TrimSpace(row[compCol])
		if comp == "" {
			return nil, fmt.Errorf("line %d: empty component", line)
		}
		cell := ""
		if len(row) > valueCol {
			cell = row[valueCol]
		}
		v, err := parseValue(cell)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.Set(id, comp, v)
	}
	return t, nil
}

func fromWideRows(header []string, rows [][]string, elemCol int) (*Table, error) {
	t := NewTable()
	for n, row := range rows {
		line := n + 2
		if isBlank(row) {
			continue
		}
		if len(row) <= elemCol {
			return nil, fmt.Errorf("line %d: short row", line)
		}
		id, err := parseElement(row[elemCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.AddElement(id)
		for k, name := range header {
			if k == elemCol || k >= len(row) {
				continue
			}
			v, err := parseValue(row[k])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, name, err)
			}
			t.Set(id, strings.TrimSpace(name), v)
		}
	}
	return t, nil
}

func parseElement(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err == nil {
		return id, nil
	}
	// spreadsheets sometimes store ids as 15.0
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid element id %q", s)
	}
	return int(f), nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
