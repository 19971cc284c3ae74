package main

import (
	"os"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/importer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	sheetFile string
	defects   bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert a spreadsheet into the profile or defects section of a case file",
	Long: `Reads the first sheet of an xlsx workbook. Column A is distance (or defect
length), column B is depth. A header mentioning "(in)" or "inch" marks a column
as inches, otherwise millimetres. The result is printed as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(sheetFile)
		if err != nil {
			return err
		}
		defer f.Close()

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		if defects {
			items, err := importer.ReadDefects(f)
			if err != nil {
				return err
			}
			return enc.Encode(map[string][]assess.DefectInput{"items": items})
		}
		profile, err := importer.ReadProfile(f)
		if err != nil {
			return err
		}
		return enc.Encode(map[string]assess.ProfileInput{"profile": profile})
	},
}

func init() {
	importCmd.Flags().StringVarP(&sheetFile, "file", "f", "", "xlsx workbook")
	importCmd.Flags().BoolVar(&defects, "defects", false, "Read a defect list (length, depth) instead of a profile")
	importCmd.MarkFlagRequired("file")
}
