package layout

import "math/rand"

// candidate is one not-yet-placed entry scored against the current
// committed placements.
type candidate struct {
	index int
	score int // letter coincidences against every committed placement
}

// chooseSeed picks the entry to place first: the one with the highest
// overlap total, breaking ties by longer word.
func chooseSeed(entries []Entry, overlap *overlapMatrix) int {
	best := 0
	for i := 1; i < len(entries); i++ {
		if overlap.total[i] > overlap.total[best] ||
			(overlap.total[i] == overlap.total[best] && len(entries[i].Word) > len(entries[best].Word)) {
			best = i
		}
	}
	return best
}

// placeAll runs one full attempt: seed the board, then recursively place
// every remaining entry. It reports whether every entry in entries got
// placed.
func placeAll(s *state, rng *rand.Rand) bool {
	seedIdx := chooseSeed(s.entries, s.overlap)
	seed := s.entries[seedIdx]

	row := s.side / 2
	col := 0
	if s.side > len(seed.Word) {
		col = (s.side - len(seed.Word)) / 2
	}

	if !s.legal(seed.Word, row, col, Across) {
		return false
	}
	s.commit(Placement{
		Word:       seed.Word,
		Clue:       seed.Clue,
		Row:        row,
		Col:        col,
		Direction:  Across,
		EntryIndex: seedIdx,
	})

	ok := placeStep(s, rng)
	if !ok {
		s.revert()
	}
	return ok
}

// placeStep recursively places every remaining unplaced entry. Candidates
// that share no letter with any committed placement are excluded for now
// but remain eligible once more of the board is committed.
func placeStep(s *state, rng *rand.Rand) bool {
	remaining := 0
	for _, p := range s.placed {
		if !p {
			remaining++
		}
	}
	if remaining == 0 {
		return true
	}

	candidates := nextCandidates(s)
	if len(candidates) == 0 {
		return false
	}
	orderCandidates(candidates, s, rng)

	for _, cand := range candidates {
		for _, opt := range placementOptions(s, cand.index) {
			if !s.legal(s.entries[cand.index].Word, opt.row, opt.col, opt.dir) {
				continue
			}
			s.commit(Placement{
				Word:       s.entries[cand.index].Word,
				Clue:       s.entries[cand.index].Clue,
				Row:        opt.row,
				Col:        opt.col,
				Direction:  opt.dir,
				EntryIndex: cand.index,
			})
			if placeStep(s, rng) {
				return true
			}
			s.revert()
		}
	}

	return false
}

// nextCandidates returns every unplaced entry sharing at least one letter
// with at least one committed placement, scored by total coincidences
// against the committed set.
func nextCandidates(s *state) []candidate {
	var out []candidate
	for i := range s.entries {
		if s.placed[i] {
			continue
		}
		score := 0
		for _, p := range s.placements {
			score += len(s.overlap.coincidences(i, p.EntryIndex))
		}
		if score > 0 {
			out = append(out, candidate{index: i, score: score})
		}
	}
	return out
}

// orderCandidates sorts candidates in strictly descending order of
// (score, overlap total, word length), shuffling within tied groups so
// that repeated attempts explore different orderings.
func orderCandidates(candidates []candidate, s *state, rng *rand.Rand) {
	less := func(a, b candidate) bool {
		if a.score != b.score {
			return a.score > b.score
		}
		if s.overlap.total[a.index] != s.overlap.total[b.index] {
			return s.overlap.total[a.index] > s.overlap.total[b.index]
		}
		return len(s.entries[a.index].Word) > len(s.entries[b.index].Word)
	}

	// Insertion sort: small candidate lists, and it keeps tied runs
	// contiguous so they can be shuffled below.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && less(candidates[j], candidates[j-1]); j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}

	equal := func(a, b candidate) bool {
		return a.score == b.score &&
			s.overlap.total[a.index] == s.overlap.total[b.index] &&
			len(s.entries[a.index].Word) == len(s.entries[b.index].Word)
	}
	start := 0
	for i := 1; i <= len(candidates); i++ {
		if i == len(candidates) || !equal(candidates[i], candidates[start]) {
			shuffleRange(candidates[start:i], rng)
			start = i
		}
	}
}

func shuffleRange(group []candidate, rng *rand.Rand) {
	for i := len(group) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		group[i], group[j] = group[j], group[i]
	}
}

type option struct {
	row, col int
	dir      Direction
}

// placementOptions builds every candidate placement position for entry
// candIdx against the currently committed placements, deduplicated by
// (row, col, direction).
func placementOptions(s *state, candIdx int) []option {
	seen := make(map[option]bool)
	var out []option

	for _, p := range s.placements {
		for _, co := range s.overlap.coincidences(candIdx, p.EntryIndex) {
			var opt option
			if p.Direction == Across {
				opt = option{row: p.Row - co.IPos, col: p.Col + co.JPos, dir: Down}
			} else {
				opt = option{row: p.Row + co.JPos, col: p.Col - co.IPos, dir: Across}
			}
			if !seen[opt] {
				seen[opt] = true
				out = append(out, opt)
			}
		}
	}

	return out
}
