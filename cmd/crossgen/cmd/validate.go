package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xwordgen/engine/pkg/layout"
)

var (
	validateInput string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a (word, clue) entry file against the normalizer",
	Long: `Validate runs layout.Normalize over one or more entry files and reports
whether each one yields a usable entry list, without running the
placement search.

Examples:
  # Validate a single entries file
  crossgen validate --input entries.json

  # Validate every entries file in a directory
  crossgen validate --input ./entries`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input file or directory to validate (required)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var files []string
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(validateInput, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .json files found in directory: %s", validateInput)
		}
	} else {
		files = []string{validateInput}
	}

	valid, invalid := 0, 0
	for _, f := range files {
		entries, err := validateFile(f)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", filepath.Base(f), err)
			invalid++
			continue
		}
		fmt.Printf("OK   %s: %d usable entries\n", filepath.Base(f), len(entries))
		valid++
	}

	fmt.Printf("\nValidation Summary:\n")
	fmt.Printf("  Total files: %d\n", len(files))
	fmt.Printf("  Valid:       %d\n", valid)
	fmt.Printf("  Invalid:     %d\n", invalid)

	if invalid > 0 {
		os.Exit(1)
	}
	return nil
}

func validateFile(path string) ([]layout.Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	entries, err := layout.Normalize(json.RawMessage(raw), layout.DefaultNormalizeConfig())
	if err != nil {
		if kind, ok := layout.KindOf(err); ok {
			return nil, fmt.Errorf("%s: %v", kind, err)
		}
		return nil, err
	}
	return entries, nil
}
