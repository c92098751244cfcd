package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xwordgen/engine/pkg/layout"
	"github.com/xwordgen/engine/pkg/output"
)

var (
	genInput      string
	genCount      int
	genSeed       int64
	genUseSeed    bool
	genFormat     string
	genOutput     string
	genTitle      string
	genAuthor     string
	genDifficulty string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a crossword layout from a list of (word, clue) entries",
	Long: `Generate reads a JSON array of (word, clue) entries, runs the layout
engine's backtracking placement search, and writes the resulting grid
and clue lists in one or more export formats.

Examples:
  # Generate a puzzle from 12 entries, placing 8 of them
  crossgen generate --input entries.json --count 8 --format json --output puzzle.json

  # Generate deterministically and emit every supported format
  crossgen generate --input entries.json --count 10 --seed 42 --format all --output ./out`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genInput, "input", "i", "", "path to a JSON array of {word, clue} entries (required)")
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 0, "number of entries to place (defaults to every entry in the input)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "random seed for reproducible placement")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "output format (json, ipuz, puz, all)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "puzzle", "output file path (without extension when --format all)")
	generateCmd.Flags().StringVar(&genTitle, "title", "Untitled Crossword", "puzzle title recorded in the export metadata")
	generateCmd.Flags().StringVar(&genAuthor, "author", "crossgen", "puzzle author recorded in the export metadata")
	generateCmd.Flags().StringVar(&genDifficulty, "difficulty", "medium", "puzzle difficulty label (easy, medium, hard)")
	generateCmd.MarkFlagRequired("input")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	genUseSeed = cmd.Flags().Changed("seed")

	raw, err := os.ReadFile(genInput)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	entries, err := layout.Normalize(json.RawMessage(raw), layout.DefaultNormalizeConfig())
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	count := genCount
	if count == 0 {
		count = len(entries)
	}

	if verbosity > 0 {
		fmt.Printf("Normalized %d entries, requesting %d placed\n", len(entries), count)
	}

	opts := layout.Options{
		OnProgress: func(msg string) {
			if verbosity > 0 {
				fmt.Println(msg)
			}
		},
	}
	if genUseSeed {
		opts.Seed = &genSeed
	}

	result, err := layout.Generate(entries, count, opts)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	fmt.Printf("Placed %d entries on a %dx%d grid\n", len(result.Placements), result.Rows, result.Cols)

	formats, err := parseFormats(genFormat)
	if err != nil {
		return err
	}

	meta := output.Meta{
		Title:      genTitle,
		Author:     genAuthor,
		Difficulty: genDifficulty,
		CreatedAt:  time.Now(),
	}

	return writeOutputFiles(result, meta, genOutput, formats)
}

// parseFormats converts a format flag value to the list of export
// formats to produce.
func parseFormats(format string) ([]string, error) {
	format = strings.ToLower(format)
	if format == "all" {
		return []string{"json", "ipuz", "puz"}, nil
	}

	switch format {
	case "json", "ipuz", "puz":
		return []string{format}, nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be json, ipuz, puz, or all)", format)
	}
}

// writeOutputFiles renders result in every requested format and writes
// each to disk alongside outPath.
func writeOutputFiles(result *layout.Result, meta output.Meta, outPath string, formats []string) error {
	base := strings.TrimSuffix(outPath, filepath.Ext(outPath))

	for _, format := range formats {
		var filePath string
		var data []byte
		var err error

		switch format {
		case "json":
			filePath = base + ".json"
			data, err = output.ToJSON(result, meta)
		case "ipuz":
			filePath = base + ".ipuz"
			data, err = output.ToIPuz(result, meta)
		case "puz":
			filePath = base + ".puz"
			data, err = output.FormatPuz(result, meta)
		}
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", format, err)
		}

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filePath, err)
		}
		fmt.Printf("wrote %s\n", filePath)
	}

	return nil
}
