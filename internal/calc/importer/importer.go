// Package importer reads defect data from spreadsheets: a river-bottom
// profile (distance, depth) for Level 2 or a defect list (length, depth) for
// a Level 0/1 batch. The first row is a header; a header cell mentioning
// "(in)" or "inch" switches that column to inches, anything else is mm.
// Rows that do not parse are skipped.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/units"
	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptySheet = errors.New("empty sheet")
	ErrNoPoints   = errors.New("no usable rows")
)

// ReadProfile reads the first sheet of an xlsx workbook as a depth profile.
func ReadProfile(r io.Reader) (assess.ProfileInput, error) {
	header, rows, err := readRows(r)
	if err != nil {
		return assess.ProfileInput{}, err
	}
	in := assess.ProfileInput{
		DistanceUnit: columnUnit(header, 0),
		DepthUnit:    columnUnit(header, 1),
	}
	for _, row := range rows {
		x, d, err := parsePair(row)
		if err != nil {
			continue
		}
		in.Points = append(in.Points, assess.PointInput{Distance: &x, Depth: &d})
	}
	if len(in.Points) == 0 {
		return assess.ProfileInput{}, ErrNoPoints
	}
	return in, nil
}

// ReadDefects reads the first sheet as one defect per row.
func ReadDefects(r io.Reader) ([]assess.DefectInput, error) {
	header, rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	lu, du := columnUnit(header, 0), columnUnit(header, 1)
	var out []assess.DefectInput
	for _, row := range rows {
		l, d, err := parsePair(row)
		if err != nil {
			continue
		}
		out = append(out, assess.DefectInput{Length: assess.Q(l, lu), Depth: assess.Q(d, du)})
	}
	if len(out) == 0 {
		return nil, ErrNoPoints
	}
	return out, nil
}

func readRows(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrEmptySheet
	}
	return rows[0], rows[1:], nil
}

func columnUnit(header []string, col int) units.Unit {
	if col >= len(header) {
		return units.MM
	}
	h := strings.ToLower(header[col])
	if strings.Contains(h, "(in)") || strings.Contains(h, "inch") {
		return units.IN
	}
	return units.MM
}

func parsePair(row []string) (float64, float64, error) {
	if len(row) < 2 {
		return 0, 0, fmt.Errorf("bad row")
	}
	a, err := toFloat(row[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := toFloat(row[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
