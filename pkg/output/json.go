package output

import (
	"encoding/json"
	"time"

	"github.com/xwordgen/engine/pkg/layout"
)

// ClueJSON represents a clue in the JSON format. It deliberately omits
// the answer text: layout.Clue carries only the number, display text,
// and length, matching what a solver is meant to see.
type ClueJSON struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// PuzzleJSON represents a puzzle in the JSON format for export.
type PuzzleJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Difficulty  string     `json:"difficulty"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	Rows int        `json:"rows"`
	Cols int        `json:"cols"`
	Grid [][]string `json:"grid"` // letters or "." for black cells

	Across []ClueJSON `json:"across"`
	Down   []ClueJSON `json:"down"`
}

// FormatJSON converts a layout.Result and its metadata into a PuzzleJSON.
func FormatJSON(result *layout.Result, meta Meta) *PuzzleJSON {
	grid := make([][]string, result.Rows)
	for y := 0; y < result.Rows; y++ {
		grid[y] = make([]string, result.Cols)
		for x := 0; x < result.Cols; x++ {
			cell := result.Grid[y][x]
			if cell.Empty() {
				grid[y][x] = "."
			} else {
				grid[y][x] = string(cell.Letter)
			}
		}
	}

	return &PuzzleJSON{
		ID:          meta.ID,
		Title:       meta.Title,
		Author:      meta.Author,
		Difficulty:  meta.Difficulty,
		CreatedAt:   meta.CreatedAt,
		PublishedAt: meta.PublishedAt,
		Rows:        result.Rows,
		Cols:        result.Cols,
		Grid:        grid,
		Across:      cluesToJSON(result.AcrossClues),
		Down:        cluesToJSON(result.DownClues),
	}
}

func cluesToJSON(clues []layout.Clue) []ClueJSON {
	out := make([]ClueJSON, len(clues))
	for i, c := range clues {
		out[i] = ClueJSON{Number: c.Number, Text: c.ClueText, Length: c.AnswerLength}
	}
	return out
}

// ToJSON converts a layout.Result to indented JSON bytes.
func ToJSON(result *layout.Result, meta Meta) ([]byte, error) {
	return json.MarshalIndent(FormatJSON(result, meta), "", "  ")
}

// ParsedPuzzle is a format-neutral view of a puzzle read back from one of
// the export formats, used by the convert command to bridge between
// formats without resurrecting a layout.Result (the placements and
// directions that produced the grid are not recoverable from the grid
// alone without re-running numbering).
type ParsedPuzzle struct {
	Meta   Meta
	Rows   int
	Cols   int
	Grid   [][]string // letters or "." for black cells
	Across []ClueJSON
	Down   []ClueJSON
}

// FromJSON parses the PuzzleJSON export format back into a ParsedPuzzle.
func FromJSON(data []byte) (*ParsedPuzzle, error) {
	var pj PuzzleJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, err
	}
	return &ParsedPuzzle{
		Meta: Meta{
			ID:          pj.ID,
			Title:       pj.Title,
			Author:      pj.Author,
			Difficulty:  pj.Difficulty,
			CreatedAt:   pj.CreatedAt,
			PublishedAt: pj.PublishedAt,
		},
		Rows:   pj.Rows,
		Cols:   pj.Cols,
		Grid:   pj.Grid,
		Across: pj.Across,
		Down:   pj.Down,
	}, nil
}
