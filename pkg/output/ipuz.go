package output

import (
	"encoding/json"
	"fmt"

	"github.com/xwordgen/engine/pkg/layout"
)

// IPuzDimensions represents the puzzle dimensions.
type IPuzDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IPuzClue represents a clue in ipuz format: [number, "clue text"].
type IPuzClue []interface{}

// IPuzClues represents the clues section with Across and Down.
type IPuzClues struct {
	Across []IPuzClue `json:"Across"`
	Down   []IPuzClue `json:"Down"`
}

// IPuzPuzzle represents the complete ipuz format structure. See
// http://ipuz.org/ for the specification.
type IPuzPuzzle struct {
	Version    string          `json:"version"`
	Kind       []string        `json:"kind"`
	Title      string          `json:"title,omitempty"`
	Author     string          `json:"author,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	Dimensions IPuzDimensions  `json:"dimensions"`
	Puzzle     [][]interface{} `json:"puzzle"`
	Solution   [][]interface{} `json:"solution"`
	Clues      IPuzClues       `json:"clues"`
}

// FormatIPuz converts a layout.Result and its metadata to ipuz format.
func FormatIPuz(result *layout.Result, meta Meta) (*IPuzPuzzle, error) {
	if result == nil {
		return nil, fmt.Errorf("result cannot be nil")
	}
	if result.Rows <= 0 || result.Cols <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", result.Cols, result.Rows)
	}

	puzzleGrid := make([][]interface{}, result.Rows)
	solutionGrid := make([][]interface{}, result.Rows)
	for y := 0; y < result.Rows; y++ {
		puzzleGrid[y] = make([]interface{}, result.Cols)
		solutionGrid[y] = make([]interface{}, result.Cols)
		for x := 0; x < result.Cols; x++ {
			cell := result.Grid[y][x]
			if cell.Empty() {
				puzzleGrid[y][x] = "#"
				solutionGrid[y][x] = "#"
				continue
			}
			solutionGrid[y][x] = string(cell.Letter)
			if num := result.NumbersMap[y][x]; num > 0 {
				puzzleGrid[y][x] = num
			} else {
				puzzleGrid[y][x] = 0
			}
		}
	}

	copyright := fmt.Sprintf("© %s", meta.Author)
	if meta.PublishedAt != nil {
		copyright = fmt.Sprintf("© %d %s", meta.PublishedAt.Year(), meta.Author)
	}

	return &IPuzPuzzle{
		Version:    "http://ipuz.org/v2",
		Kind:       []string{"http://ipuz.org/crossword#1"},
		Title:      meta.Title,
		Author:     meta.Author,
		Copyright:  copyright,
		Difficulty: meta.Difficulty,
		Dimensions: IPuzDimensions{Width: result.Cols, Height: result.Rows},
		Puzzle:     puzzleGrid,
		Solution:   solutionGrid,
		Clues: IPuzClues{
			Across: cluesToIPuz(result.AcrossClues),
			Down:   cluesToIPuz(result.DownClues),
		},
	}, nil
}

func cluesToIPuz(clues []layout.Clue) []IPuzClue {
	out := make([]IPuzClue, 0, len(clues))
	for _, c := range clues {
		out = append(out, IPuzClue{c.Number, c.ClueText})
	}
	return out
}

// ToIPuz converts a layout.Result to ipuz JSON bytes.
func ToIPuz(result *layout.Result, meta Meta) ([]byte, error) {
	ipuzPuzzle, err := FormatIPuz(result, meta)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ipuzPuzzle, "", "  ")
}

// FromIPuz parses ipuz JSON bytes into a format-neutral ParsedPuzzle.
func FromIPuz(data []byte) (*ParsedPuzzle, error) {
	var ipuz IPuzPuzzle
	if err := json.Unmarshal(data, &ipuz); err != nil {
		return nil, fmt.Errorf("failed to parse ipuz: %w", err)
	}

	grid := make([][]string, ipuz.Dimensions.Height)
	for y := 0; y < ipuz.Dimensions.Height; y++ {
		grid[y] = make([]string, ipuz.Dimensions.Width)
		for x := 0; x < ipuz.Dimensions.Width; x++ {
			grid[y][x] = "."
			if y < len(ipuz.Solution) && x < len(ipuz.Solution[y]) {
				if sol, ok := ipuz.Solution[y][x].(string); ok && sol != "#" {
					grid[y][x] = sol
				}
			}
		}
	}

	return &ParsedPuzzle{
		Meta: Meta{
			Title:      ipuz.Title,
			Author:     ipuz.Author,
			Difficulty: ipuz.Difficulty,
		},
		Rows:   ipuz.Dimensions.Height,
		Cols:   ipuz.Dimensions.Width,
		Grid:   grid,
		Across: ipuzCluesToJSON(ipuz.Clues.Across),
		Down:   ipuzCluesToJSON(ipuz.Clues.Down),
	}, nil
}

func ipuzCluesToJSON(clues []IPuzClue) []ClueJSON {
	out := make([]ClueJSON, 0, len(clues))
	for _, clue := range clues {
		if len(clue) < 2 {
			continue
		}
		number := 0
		if num, ok := clue[0].(float64); ok {
			number = int(num)
		}
		text := ""
		if txt, ok := clue[1].(string); ok {
			text = txt
		}
		out = append(out, ClueJSON{Number: number, Text: text})
	}
	return out
}

// ValidateIPuz checks that a layout.Result and metadata can be converted
// to ipuz format without loss.
func ValidateIPuz(result *layout.Result, meta Meta) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}
	if meta.Title == "" {
		return fmt.Errorf("puzzle title is required")
	}
	if meta.Author == "" {
		return fmt.Errorf("puzzle author is required")
	}
	if result.Rows <= 0 || result.Cols <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", result.Cols, result.Rows)
	}
	if len(result.AcrossClues) == 0 && len(result.DownClues) == 0 {
		return fmt.Errorf("puzzle must have at least one clue")
	}
	return nil
}
