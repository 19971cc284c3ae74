// Package report renders an assessment as a one-document PDF: the inputs in
// output units, the result figures, the verdict, the full calculation trace
// and, when supplied, the narrative summary.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/units"
	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

// Meta is the document header.
type Meta struct {
	ID        uuid.UUID
	Project   string
	Author    string
	Title     string
	Date      time.Time
	Narrative string
}

// core fonts are cp1252; these have no glyph there
var symbols = strings.NewReplacer("≤", "<=", "≥", ">=", "√", "sqrt", "⅔", "2/3")

// Write renders the report for a completed assessment.
func Write(w io.Writer, m Meta, req assess.Request, a assess.Assessment) error {
	if m.Title == "" {
		m.Title = "Corrosion Defect Assessment"
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	res := a.Result
	lu, pu := res.System.Length(), res.System.Pressure()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(symbols.Replace(s)) }

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, text(m.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Report: %s", m.ID),
		fmt.Sprintf("Project: %s", m.Project),
		fmt.Sprintf("Author: %s", m.Author),
		fmt.Sprintf("Date: %s", m.Date.Format("2006-01-02")),
		fmt.Sprintf("Method: %s", res.Level),
	} {
		pdf.Cell(0, 5, text(line))
		pdf.Ln(5)
	}

	section(pdf, "Inputs")
	spec := req.Pipe.Spec()
	rows := [][2]string{
		{"Outer diameter (D)", length(spec.OuterDiameter, res.System)},
		{"Wall thickness (t)", length(spec.WallThickness, res.System)},
		{"SMYS", pressure(spec.SMYS, res.System)},
		{"MAOP", pressure(spec.MAOP, res.System)},
		{"Design factor (F)", fmt.Sprintf("%g", spec.DesignFactor)},
	}
	if req.Pipe.Grade != "" {
		rows = append(rows, [2]string{"Grade", "API 5L " + req.Pipe.Grade})
	}
	if res.Level == assess.Level2 {
		rows = append(rows, [2]string{"Profile points", fmt.Sprintf("%d", len(req.ProfilePoints()))})
	} else {
		d := req.Defect.Defect()
		rows = append(rows,
			[2]string{"Defect length (L)", length(d.Length, res.System)},
			[2]string{"Defect depth (d)", length(d.Depth, res.System)})
	}
	table(pdf, text, rows)

	section(pdf, "Results")
	rows = [][2]string{
		{"Flow stress", fmt.Sprintf("%.2f %s", res.FlowStress, pu)},
		{"Failure pressure (Pf)", fmt.Sprintf("%.2f %s", res.FailurePressure, pu)},
		{"Safe pressure (Psafe)", fmt.Sprintf("%.2f %s", res.SafePressure, pu)},
		{"ERF", erf(res.ERF)},
		{"Max depth", fmt.Sprintf("%.2f %s (%.1f%% of t)", res.MaxDepth, lu, 100*res.MaxDepth/res.WallThickness)},
	}
	if res.Critical != nil {
		rows = append(rows, [2]string{"Critical interval",
			fmt.Sprintf("%.2f to %.2f %s, A = %.2f %s²", res.Critical.Start, res.Critical.End, lu, res.Critical.Area, lu)})
	}
	table(pdf, text, rows)

	section(pdf, "Verdict")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(0, 6, text(fmt.Sprintf("%s (%s)", a.Headline, a.Verdict)), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, text(a.Details), "", "L", false)

	section(pdf, "Calculation steps")
	pdf.SetFont("Courier", "", 9)
	for _, s := range res.Steps {
		pdf.MultiCell(0, 4.5, text(s), "", "L", false)
	}

	if m.Narrative != "" {
		section(pdf, "Engineering summary")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, text(strings.ReplaceAll(m.Narrative, "**", "")), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func table(pdf *gofpdf.Fpdf, text func(string) string, rows [][2]string) {
	for _, r := range rows {
		pdf.CellFormat(60, 6, text(r[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, text(r[1]), "1", 1, "L", false, 0, "")
	}
}

func length(v float64, sys units.System) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f %s", units.LengthFromMetric(v, sys), sys.Length())
}

func pressure(v float64, sys units.System) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f %s", units.PressureFromMetric(v, sys), sys.Pressure())
}

func erf(v float64) string {
	if math.IsInf(v, 1) {
		return "infinite (no safe pressure)"
	}
	return fmt.Sprintf("%.4f", v)
}
