package layout

import (
	"fmt"
	"math/rand"
	"time"
)

// ProgressFunc receives human-readable, side-effect-only progress
// notifications during generation. It must not be relied upon for
// correctness: Generate recovers any panic raised inside it and carries
// on with the search, so callers should keep it simple (logging, UI
// updates).
type ProgressFunc func(message string)

// Options configures one call to Generate.
type Options struct {
	// OnProgress, if set, is invoked with a phase description before each
	// attempt.
	OnProgress ProgressFunc
	// Seed, if non-nil, makes the random source (subset selection and
	// candidate tie-breaking) reproducible. Absent, the source is seeded
	// from the current time.
	Seed *int64
}

// Generate runs the full five-stage pipeline (subset selection, sizing,
// overlap precomputation, backtracking placement, trim and numbering)
// and returns the best-scored layout, or an error if requestedCount is
// out of range or no attempt could place every chosen entry.
func Generate(entries []Entry, requestedCount int, opts Options) (*Result, error) {
	if requestedCount < MinWords {
		return nil, newError(CountBelowMinimum, "requested %d entries, minimum is %d", requestedCount, MinWords)
	}
	if requestedCount > len(entries) {
		if len(entries) < MinWords {
			return nil, newError(NotEnoughEntries, "only %d valid entries available, need at least %d", len(entries), MinWords)
		}
		return nil, newError(CountExceedsAvailable, "requested %d entries, only %d available", requestedCount, len(entries))
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	subset := chooseSubset(entries, requestedCount, rng)
	side := gridSide(subset)
	overlap := buildOverlapMatrix(subset)

	var best *state
	var bestScore float64
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if opts.OnProgress != nil {
			func() {
				defer func() { _ = recover() }()
				opts.OnProgress(progressMessage(attempt, MaxAttempts))
			}()
		}

		s := newState(side, subset, overlap)
		if !placeAll(s, rng) {
			continue
		}

		trimmedBoard, trimmedPlacements := trim(s.board, s.placements)
		attemptScore := score(trimmedBoard, trimmedPlacements)

		if best == nil || attemptScore > bestScore {
			best = s
			bestScore = attemptScore
		}
		if attemptScore >= EarlyExitScore {
			break
		}
	}

	if best == nil {
		return nil, newError(Unplaceable, "could not place all %d entries after %d attempts", len(subset), MaxAttempts)
	}

	trimmedBoard, trimmedPlacements := trim(best.board, best.placements)
	numbers := number(trimmedBoard, trimmedPlacements)
	across, down := clueLists(trimmedPlacements)

	return &Result{
		Grid:           trimmedBoard,
		Placements:     trimmedPlacements,
		NumbersMap:     numbers,
		AcrossClues:    across,
		DownClues:      down,
		RequestedCount: requestedCount,
		Rows:           trimmedBoard.rows(),
		Cols:           trimmedBoard.cols(),
	}, nil
}

func progressMessage(attempt, max int) string {
	return fmt.Sprintf("Layout attempt %d of %d", attempt, max)
}

// chooseSubset returns n entries chosen from entries. If len(entries) ==
// n, it returns entries unchanged (in input order). Otherwise it picks a
// random n-subset via rng and returns it sorted by OriginalIndex so
// downstream numbering reads naturally.
func chooseSubset(entries []Entry, n int, rng *rand.Rand) []Entry {
	if len(entries) == n {
		return entries
	}

	indices := rng.Perm(len(entries))[:n]
	chosen := make([]Entry, n)
	for i, idx := range indices {
		chosen[i] = entries[idx]
	}

	for i := 1; i < len(chosen); i++ {
		for j := i; j > 0 && chosen[j].OriginalIndex < chosen[j-1].OriginalIndex; j-- {
			chosen[j], chosen[j-1] = chosen[j-1], chosen[j]
		}
	}

	return chosen
}
