package layout

import "testing"

func TestGridSide_ClampsToMinimum(t *testing.T) {
	entries := makeEntries([2]string{"AB", "x"})
	if got := gridSide(entries); got != MinGridSize {
		t.Errorf("gridSide = %d, want %d", got, MinGridSize)
	}
}

func TestGridSide_ClampsToMaximum(t *testing.T) {
	var entries []Entry
	// total letters = 30*12 = 360, side = ceil(sqrt(720)) = 27, clamped down to MaxGridSize.
	for i := 0; i < 30; i++ {
		entries = append(entries, Entry{Word: "ABCDEFGHIJKL", Clue: "x"})
	}
	if got := gridSide(entries); got != MaxGridSize {
		t.Errorf("gridSide = %d, want %d", got, MaxGridSize)
	}
}

func TestGridSide_ScalesWithLetterCount(t *testing.T) {
	entries := makeEntries(
		[2]string{"ABCDEFGHIJ", "x"},
		[2]string{"ABCDEFGHIJ", "y"},
		[2]string{"ABCDEFGHIJ", "z"},
		[2]string{"ABCDEFGHIJ", "u"},
		[2]string{"ABCDEFGHIJ", "v"},
		[2]string{"ABCDEFGHIJ", "w"},
	)
	// total letters = 60, side = ceil(sqrt(120)) = 11, inside [MinGridSize, MaxGridSize].
	if got := gridSide(entries); got != 11 {
		t.Errorf("gridSide = %d, want %d", got, 11)
	}
}
