package batch

import (
	"errors"
	"fmt"
	"io"
	"math"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/engine"
	"Integrity/internal/calc/units"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

var ErrNoItems = errors.New("no items")

var validate = validator.New()

// Input assesses several single defects on the same pipe at Level 0 or 1.
type Input struct {
	Level  assess.Level         `json:"level" yaml:"level" validate:"gte=0,lte=1"`
	System units.System         `json:"system" yaml:"system" validate:"omitempty,oneof=metric imperial"`
	Pipe   assess.PipeInput     `json:"pipe" yaml:"pipe"`
	Items  []assess.DefectInput `json:"items" yaml:"items"`
}

// Item is one row of a batch. A nil Assessment means the row was incomplete.
type Item struct {
	Index      int                `json:"index"`
	Assessment *assess.Assessment `json:"assessment"`
}

type Result struct {
	Level      assess.Level `json:"level"`
	Assessed   int          `json:"assessed"`
	Acceptable int          `json:"acceptable"`
	Items      []Item       `json:"items"`
}

// Validate checks the batch envelope, including units inside the pipe input.
func (in Input) Validate() error {
	return validate.Struct(in)
}

func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if in.Level != assess.Level0 && in.Level != assess.Level1 {
		return Result{}, fmt.Errorf("batch supports levels 0 and 1, got %d", in.Level)
	}
	out := Result{Level: in.Level, Items: make([]Item, 0, len(in.Items))}
	for i, d := range in.Items {
		req := assess.Request{System: in.System, Pipe: in.Pipe, Defect: d}
		item := Item{Index: i}
		if res := engine.Evaluate(in.Level, req); res != nil {
			a := assess.NewAssessment(res)
			item.Assessment = &a
			out.Assessed++
			if a.Verdict.Acceptable() {
				out.Acceptable++
			}
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

const sheet = "Results"

// WriteXLSX writes one row per item. Incomplete rows keep their index with the
// verdict column set to "no result".
func WriteXLSX(w io.Writer, res Result, sys units.System) error {
	sys = units.Normalize(sys)
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	ul, up := sys.Length(), sys.Pressure()
	header := []any{
		"row",
		fmt.Sprintf("max depth (%s)", ul),
		"z",
		fmt.Sprintf("Pf (%s)", up),
		fmt.Sprintf("Psafe (%s)", up),
		"ERF",
		"verdict",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, item := range res.Items {
		row := []any{item.Index + 1}
		if a := item.Assessment; a != nil {
			r := a.Result
			erf := any(r.ERF)
			if math.IsInf(r.ERF, 1) {
				erf = "inf"
			}
			row = append(row, r.MaxDepth, r.Z, r.FailurePressure, r.SafePressure, erf, string(a.Verdict))
		} else {
			row = append(row, "", "", "", "", "", "no result")
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}
