package main

import (
	"errors"
	"fmt"
	"os"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/engine"
	"Integrity/internal/calc/report"
	"Integrity/internal/metrics"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoResult = errors.New("no result: pipe or defect/profile input incomplete")

var (
	caseFile    string
	output      string
	levelFlag   string
	pdfFile     string
	projectName string
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess one defect or profile from a case file",
	Example: `  b31g example > case.yaml
  b31g assess -f case.yaml -o text
  b31g assess -f case.yaml --level rstreng --pdf report.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if output != "json" && output != "text" {
			return fmt.Errorf("unknown output format %q", output)
		}
		c, err := readCase(caseFile)
		if err != nil {
			return err
		}
		if levelFlag != "" {
			c.Level = levelFlag
		}
		level, err := c.level()
		if err != nil {
			return err
		}

		res := engine.Evaluate(level, c.Request)
		if res == nil {
			metrics.IncreaseNoResult(int(level))
			return errNoResult
		}
		a := assess.NewAssessment(res)
		metrics.IncreaseAssessments(int(level), string(a.Verdict))
		logger.Debug("assessment complete", zap.Stringer("level", level), zap.String("verdict", string(a.Verdict)))

		if pdfFile != "" {
			if err := writePDF(pdfFile, c.Request, a); err != nil {
				return err
			}
		}
		if output == "text" {
			return writeText(cmd.OutOrStdout(), a)
		}
		return writeJSON(cmd.OutOrStdout(), a)
	},
}

func writePDF(path string, req assess.Request, a assess.Assessment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	meta := report.Meta{ID: uuid.New(), Project: projectName}
	if err := report.Write(f, meta, req, a); err != nil {
		f.Close()
		return err
	}
	logger.Info("report written", zap.String("path", path), zap.Stringer("report_id", meta.ID))
	return f.Close()
}

func init() {
	assessCmd.Flags().StringVarP(&caseFile, "file", "f", "-", "Case file (YAML or JSON), - for stdin")
	assessCmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or text")
	assessCmd.Flags().StringVar(&levelFlag, "level", "", "Override the level: 0|original, 1|modified, 2|rstreng")
	assessCmd.Flags().StringVar(&pdfFile, "pdf", "", "Also write a PDF report to this path")
	assessCmd.Flags().StringVar(&projectName, "project", "", "Project name for the PDF report")
}
