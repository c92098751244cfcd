package layout

// state is the mutable scratch the backtracking search operates on for a
// single attempt. It is created fresh per attempt and discarded at the
// end of it; nothing here survives across attempts or calls.
type state struct {
	board      Board
	usedAcross [][]bool
	usedDown   [][]bool
	side       int
	placements []Placement
	placed     []bool
	entries    []Entry
	overlap    *overlapMatrix
}

func newState(side int, entries []Entry, overlap *overlapMatrix) *state {
	s := &state{
		board:   NewBoard(side),
		side:    side,
		entries: entries,
		overlap: overlap,
		placed:  make([]bool, len(entries)),
	}
	s.usedAcross = make([][]bool, side)
	s.usedDown = make([][]bool, side)
	for r := 0; r < side; r++ {
		s.usedAcross[r] = make([]bool, side)
		s.usedDown[r] = make([]bool, side)
	}
	return s
}

// legal reports whether word can be placed at (row, col) in direction dir
// against the current board, per the four rules of the adjacency check.
func (s *state) legal(word string, row, col int, dir Direction) bool {
	dr, dc := dir.Delta()
	n := len(word)

	// 1. Bounds.
	endRow, endCol := row+(n-1)*dr, col+(n-1)*dc
	if row < 0 || col < 0 || endRow >= s.side || endCol >= s.side {
		return false
	}

	// 2. No touching end-to-end.
	beforeRow, beforeCol := row-dr, col-dc
	if s.board.inBounds(beforeRow, beforeCol) && !s.board[beforeRow][beforeCol].Empty() {
		return false
	}
	afterRow, afterCol := endRow+dr, endCol+dc
	if s.board.inBounds(afterRow, afterCol) && !s.board[afterRow][afterCol].Empty() {
		return false
	}

	for k := 0; k < n; k++ {
		r, c := row+k*dr, col+k*dc
		cell := s.board[r][c]

		// 3. Letter compatibility.
		if !cell.Empty() {
			if cell.Letter != word[k] {
				return false
			}
			continue
		}

		// 4. No incidental parallel touching: only checked at cells this
		// placement would newly occupy.
		if !s.parallelNeighborsClear(r, c, dir) {
			return false
		}
	}

	return true
}

// parallelNeighborsClear checks rule 4 of the legality check at a single
// newly-occupied cell (r, c) for a placement running in direction dir.
func (s *state) parallelNeighborsClear(r, c int, dir Direction) bool {
	if dir == Across {
		return s.neighborOK(r-1, c) && s.neighborOK(r+1, c)
	}
	return s.neighborOK(r, c-1) && s.neighborOK(r, c+1)
}

// neighborOK reports that the neighbor at (r, c) is either off-board or
// empty. A non-empty neighbor at a cell the new placement is introducing
// (as opposed to crossing) can only be the end of some other committed
// word running perpendicular to it -- any word actually passing through
// this cell would already occupy it, which rule 3 handles as a crossing
// -- so a non-empty neighbor here always means the new placement would
// extend that word into an unintended adjacency.
func (s *state) neighborOK(r, c int) bool {
	if !s.board.inBounds(r, c) {
		return true
	}
	return s.board[r][c].Empty()
}

// commit records placement p onto the board: sets every cell along its
// path to p.Word's letters and marks the direction's usage flag.
// Committing is the only way state is mutated; it must be paired with a
// revert in strict LIFO order to keep the board reproducible.
func (s *state) commit(p Placement) {
	dr, dc := p.Direction.Delta()
	for k := 0; k < len(p.Word); k++ {
		r, c := p.Row+k*dr, p.Col+k*dc
		s.board[r][c] = Cell{Letter: p.Word[k]}
		if p.Direction == Across {
			s.usedAcross[r][c] = true
		} else {
			s.usedDown[r][c] = true
		}
	}
	s.placements = append(s.placements, p)
	s.placed[p.EntryIndex] = true
}

// revert undoes the most recently committed placement, clearing a cell's
// letter only once neither direction's usage flag still claims it.
func (s *state) revert() {
	n := len(s.placements)
	p := s.placements[n-1]
	s.placements = s.placements[:n-1]
	s.placed[p.EntryIndex] = false

	dr, dc := p.Direction.Delta()
	for k := 0; k < len(p.Word); k++ {
		r, c := p.Row+k*dr, p.Col+k*dc
		if p.Direction == Across {
			s.usedAcross[r][c] = false
		} else {
			s.usedDown[r][c] = false
		}
		if !s.usedAcross[r][c] && !s.usedDown[r][c] {
			s.board[r][c] = Cell{}
		}
	}
}
