package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xwordgen/engine/pkg/output"
)

var (
	convertInput  string
	convertOutput string
	convertFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a generated puzzle between export formats",
	Long: `Convert reads a puzzle previously written by "generate" (.json or
.ipuz) and re-emits it in a different export format. Converting from
.puz is not supported: the binary format does not carry enough
information to reconstruct a ParsedPuzzle.

Examples:
  # Convert JSON to ipuz
  crossgen convert --input puzzle.json --output puzzle.ipuz --format ipuz`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "input puzzle file (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file path (required)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "target format: json or ipuz (required)")

	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")
	convertCmd.MarkFlagRequired("format")
}

func runConvert(cmd *cobra.Command, args []string) error {
	targetFormat := strings.ToLower(convertFormat)
	if targetFormat != "json" && targetFormat != "ipuz" {
		return fmt.Errorf("unsupported format '%s': must be json or ipuz", convertFormat)
	}

	data, err := os.ReadFile(convertInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var parsed *output.ParsedPuzzle
	switch strings.ToLower(filepath.Ext(convertInput)) {
	case ".ipuz":
		parsed, err = output.FromIPuz(data)
	case ".puz":
		return fmt.Errorf("parsing .puz files is not supported; convert from json or ipuz instead")
	default:
		parsed, err = output.FromJSON(data)
		if err != nil {
			parsed, err = output.FromIPuz(data)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to parse input puzzle: %w", err)
	}

	var outData []byte
	switch targetFormat {
	case "json":
		outData, err = parsedToJSON(parsed)
	case "ipuz":
		outData, err = parsedToIPuz(parsed)
	}
	if err != nil {
		return fmt.Errorf("failed to convert to %s: %w", targetFormat, err)
	}

	if err := os.WriteFile(convertOutput, outData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Converted %s -> %s (%s)\n", convertInput, convertOutput, targetFormat)
	return nil
}

// parsedToJSON re-serializes a format-neutral ParsedPuzzle as the JSON
// export format. It cannot go through output.ToJSON, which requires a
// *layout.Result: a ParsedPuzzle only carries the grid and clue lists a
// prior export already flattened, not the placements that produced it.
func parsedToJSON(p *output.ParsedPuzzle) ([]byte, error) {
	pj := output.PuzzleJSON{
		ID:          p.Meta.ID,
		Title:       p.Meta.Title,
		Author:      p.Meta.Author,
		Difficulty:  p.Meta.Difficulty,
		CreatedAt:   p.Meta.CreatedAt,
		PublishedAt: p.Meta.PublishedAt,
		Rows:        p.Rows,
		Cols:        p.Cols,
		Grid:        p.Grid,
		Across:      p.Across,
		Down:        p.Down,
	}
	return json.MarshalIndent(pj, "", "  ")
}

// parsedToIPuz re-serializes a format-neutral ParsedPuzzle as the ipuz
// export format, for the same reason parsedToJSON exists.
func parsedToIPuz(p *output.ParsedPuzzle) ([]byte, error) {
	puzzleGrid := make([][]interface{}, p.Rows)
	for y := 0; y < p.Rows; y++ {
		puzzleGrid[y] = make([]interface{}, p.Cols)
		for x := 0; x < p.Cols; x++ {
			if p.Grid[y][x] == "." || p.Grid[y][x] == "" {
				puzzleGrid[y][x] = "#"
			} else {
				puzzleGrid[y][x] = p.Grid[y][x]
			}
		}
	}

	ipuz := output.IPuzPuzzle{
		Version:    "http://ipuz.org/v2",
		Kind:       []string{"http://ipuz.org/crossword#1"},
		Title:      p.Meta.Title,
		Author:     p.Meta.Author,
		Difficulty: p.Meta.Difficulty,
		Dimensions: output.IPuzDimensions{Width: p.Cols, Height: p.Rows},
		Puzzle:     puzzleGrid,
		Solution:   puzzleGrid,
		Clues: output.IPuzClues{
			Across: cluesToIPuzFormat(p.Across),
			Down:   cluesToIPuzFormat(p.Down),
		},
	}
	return json.MarshalIndent(ipuz, "", "  ")
}

func cluesToIPuzFormat(clues []output.ClueJSON) []output.IPuzClue {
	out := make([]output.IPuzClue, 0, len(clues))
	for _, c := range clues {
		out = append(out, output.IPuzClue{c.Number, c.Text})
	}
	return out
}
