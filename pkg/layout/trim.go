package layout

// trim crops board to the minimal bounding rectangle containing a letter
// and shifts every placement's (row, col) by the same offset. A board
// with no letters is returned unchanged -- this should be unreachable on
// a successful layout.
func trim(board Board, placements []Placement) (Board, []Placement) {
	minR, minC := board.rows(), board.cols()
	maxR, maxC := -1, -1

	for r := 0; r < board.rows(); r++ {
		for c := 0; c < board.cols(); c++ {
			if board[r][c].Empty() {
				continue
			}
			if r < minR {
				minR = r
			}
			if r > maxR {
				maxR = r
			}
			if c < minC {
				minC = c
			}
			if c > maxC {
				maxC = c
			}
		}
	}

	if maxR < 0 {
		return board, placements
	}

	trimmed := NewRectBoard(maxR-minR+1, maxC-minC+1)
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			trimmed[r-minR][c-minC] = board[r][c]
		}
	}

	shifted := make([]Placement, len(placements))
	for i, p := range placements {
		p.Row -= minR
		p.Col -= minC
		shifted[i] = p
	}

	return trimmed, shifted
}
