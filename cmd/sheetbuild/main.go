// Command sheetbuild compiles a sheet template against a JSON or YAML data
// file and writes the result as an xlsx workbook or CSV text.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	sheetbuilder "github.com/hellowearemito/spreadsheet-builder"
)

var (
	dataPath  string
	outPath   string
	asCSV     bool
	delimiter string
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "sheetbuild [template.sheet]",
		Short: "Build spreadsheets from sheet templates and structured data",
		Long: `sheetbuild compiles a sheet template, injects the data tree from a JSON
or YAML file and writes the resolved document as xlsx or CSV.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON or YAML data file injected into the template")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "output.xlsx", "Output file path")
	rootCmd.Flags().BoolVar(&asCSV, "csv", false, "Write CSV instead of xlsx")
	rootCmd.Flags().StringVar(&delimiter, "delimiter", ",", "CSV field delimiter")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	data, err := loadData(dataPath)
	if err != nil {
		return err
	}

	log.Info().Str("template", args[0]).Str("out", outPath).Msg("building")

	if asCSV {
		if len(delimiter) != 1 {
			return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()
		if err := sheetbuilder.BuildCSV(string(source), data, out, rune(delimiter[0])); err != nil {
			return fmt.Errorf("build: %w", err)
		}
	} else {
		if err := sheetbuilder.BuildXLSX(string(source), data, outPath); err != nil {
			return fmt.Errorf("build: %w", err)
		}
	}

	log.Info().Str("out", outPath).Msg("written")
	return nil
}

func loadData(path string) (*sheetbuilder.Mapping, error) {
	if path == "" {
		return sheetbuilder.NewMapping(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return sheetbuilder.FromYAML(raw)
	default:
		return sheetbuilder.FromJSON(raw)
	}
}
