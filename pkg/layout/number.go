package layout

import "sort"

// number walks the trimmed board in row-major order, assigning standard
// crossword numbers to every cell that starts an across and/or a down
// placement, then builds the two ordered clue lists. It mutates each
// placement's Number field in place and returns the numbers map.
func number(board Board, placements []Placement) [][]int {
	acrossStart := make(map[[2]int]bool)
	downStart := make(map[[2]int]bool)
	for _, p := range placements {
		if p.Direction == Across {
			acrossStart[[2]int{p.Row, p.Col}] = true
		} else {
			downStart[[2]int{p.Row, p.Col}] = true
		}
	}

	numbers := make([][]int, board.rows())
	for r := range numbers {
		numbers[r] = make([]int, board.cols())
	}

	cellNumber := make(map[[2]int]int)
	next := 1
	for r := 0; r < board.rows(); r++ {
		for c := 0; c < board.cols(); c++ {
			if board[r][c].Empty() {
				continue
			}
			key := [2]int{r, c}
			if !acrossStart[key] && !downStart[key] {
				continue
			}
			numbers[r][c] = next
			cellNumber[key] = next
			next++
		}
	}

	for i := range placements {
		placements[i].Number = cellNumber[[2]int{placements[i].Row, placements[i].Col}]
	}

	return numbers
}

// clueLists splits placements into ascending-number-ordered Across and
// Down clue lists.
func clueLists(placements []Placement) (across, down []Clue) {
	for _, p := range placements {
		clue := Clue{Number: p.Number, ClueText: p.Clue, AnswerLength: len(p.Word)}
		if p.Direction == Across {
			across = append(across, clue)
		} else {
			down = append(down, clue)
		}
	}
	sort.Slice(across, func(i, j int) bool { return across[i].Number < across[j].Number })
	sort.Slice(down, func(i, j int) bool { return down[i].Number < down[j].Number })
	return across, down
}
