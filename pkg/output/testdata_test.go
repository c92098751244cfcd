package output

import (
	"time"

	"github.com/xwordgen/engine/pkg/layout"
)

// sampleResult builds a small, hand-checked layout.Result: CAT across
// and CAR down crossing at the shared C, for exercising the exporters
// without depending on the search's behavior.
func sampleResult() *layout.Result {
	grid := layout.NewRectBoard(3, 3)
	grid[0][0] = layout.Cell{Letter: 'C'}
	grid[0][1] = layout.Cell{Letter: 'A'}
	grid[0][2] = layout.Cell{Letter: 'T'}
	grid[1][0] = layout.Cell{Letter: 'A'}
	grid[2][0] = layout.Cell{Letter: 'R'}

	numbers := [][]int{
		{1, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}

	return &layout.Result{
		Grid: grid,
		Placements: []layout.Placement{
			{Word: "CAT", Clue: "Feline", Row: 0, Col: 0, Direction: layout.Across, EntryIndex: 0, Number: 1},
			{Word: "CAR", Clue: "Vehicle", Row: 0, Col: 0, Direction: layout.Down, EntryIndex: 1, Number: 1},
		},
		NumbersMap:     numbers,
		AcrossClues:    []layout.Clue{{Number: 1, ClueText: "Feline", AnswerLength: 3}},
		DownClues:      []layout.Clue{{Number: 1, ClueText: "Vehicle", AnswerLength: 3}},
		RequestedCount: 2,
		Rows:           3,
		Cols:           3,
	}
}

func sampleMeta() Meta {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	published := now.Add(24 * time.Hour)
	return Meta{
		ID:          "test-puzzle-123",
		Title:       "Test Puzzle",
		Author:      "Test Author",
		Difficulty:  "medium",
		CreatedAt:   now,
		PublishedAt: &published,
	}
}
