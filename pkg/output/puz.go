package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/xwordgen/engine/pkg/layout"
)

// FormatPuz converts a layout.Result and its metadata to .puz binary
// format, used by AcrossLite and compatible solvers.
func FormatPuz(result *layout.Result, meta Meta) ([]byte, error) {
	solution := buildSolutionString(result)
	state := strings.Repeat("-", len(solution))

	copyright := fmt.Sprintf("© %s", meta.Author)
	clues := buildClueStrings(result)

	width := byte(result.Cols)
	height := byte(result.Rows)
	numClues := uint16(len(result.AcrossClues) + len(result.DownClues))

	cib := computeCIB(width, height, numClues, 0x0001, 0x0000)

	buf := new(bytes.Buffer)
	if err := writeHeader(buf, width, height, numClues, cib, solution, state); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := writeStrings(buf, meta.Title, meta.Author, copyright, clues, ""); err != nil {
		return nil, fmt.Errorf("failed to write strings: %w", err)
	}

	return buf.Bytes(), nil
}

// buildSolutionString creates the row-major solution string from the grid.
func buildSolutionString(result *layout.Result) string {
	var solution strings.Builder
	for y := 0; y < result.Rows; y++ {
		for x := 0; x < result.Cols; x++ {
			cell := result.Grid[y][x]
			if cell.Empty() {
				solution.WriteByte('.')
			} else {
				solution.WriteByte(cell.Letter)
			}
		}
	}
	return solution.String()
}

// buildClueStrings orders clue text the way .puz expects: ascending
// number, across before down within a tied number.
func buildClueStrings(result *layout.Result) []string {
	type numberedClue struct {
		number int
		text   string
		down   bool
	}

	var allClues []numberedClue
	for _, clue := range result.AcrossClues {
		allClues = append(allClues, numberedClue{number: clue.Number, text: clue.ClueText})
	}
	for _, clue := range result.DownClues {
		allClues = append(allClues, numberedClue{number: clue.Number, text: clue.ClueText, down: true})
	}

	for i := 0; i < len(allClues)-1; i++ {
		for j := i + 1; j < len(allClues); j++ {
			swap := allClues[i].number > allClues[j].number ||
				(allClues[i].number == allClues[j].number && allClues[i].down && !allClues[j].down)
			if swap {
				allClues[i], allClues[j] = allClues[j], allClues[i]
			}
		}
	}

	clueTexts := make([]string, len(allClues))
	for i, clue := range allClues {
		clueTexts[i] = clue.text
	}
	return clueTexts
}

// writeHeader writes the .puz file header.
func writeHeader(buf *bytes.Buffer, width, height byte, numClues uint16, cib uint16, solution, state string) error {
	globalCksum := uint16(0)

	buf.WriteString("ACROSS&DOWN\x00")
	binary.Write(buf, binary.LittleEndian, globalCksum)
	buf.WriteString("ICHEATED")
	binary.Write(buf, binary.LittleEndian, uint16(0))
	for i := 0; i < 4; i++ {
		binary.Write(buf, binary.LittleEndian, uint16(0))
	}
	buf.WriteString("1.3\x00")
	binary.Write(buf, binary.LittleEndian, uint16(0))
	binary.Write(buf, binary.LittleEndian, uint16(0))
	buf.Write(make([]byte, 4))
	buf.WriteByte(width)
	buf.WriteByte(height)
	binary.Write(buf, binary.LittleEndian, numClues)
	binary.Write(buf, binary.LittleEndian, uint16(0x0001))
	binary.Write(buf, binary.LittleEndian, uint16(0x0000))
	buf.WriteString(solution)
	buf.WriteString(state)

	return nil
}

// writeStrings writes the strings section (null-terminated strings).
func writeStrings(buf *bytes.Buffer, title, author, copyright string, clues []string, notes string) error {
	buf.WriteString(title)
	buf.WriteByte(0)
	buf.WriteString(author)
	buf.WriteByte(0)
	buf.WriteString(copyright)
	buf.WriteByte(0)
	for _, clue := range clues {
		buf.WriteString(clue)
		buf.WriteByte(0)
	}
	if notes != "" {
		buf.WriteString(notes)
		buf.WriteByte(0)
	}
	return nil
}

// computeCIB computes the CIB checksum.
func computeCIB(width, height byte, numClues, puzzleType, scrambledState uint16) uint16 {
	cksum := uint16(0)
	cksum = checksumRegion(cksum, []byte{width, height})

	numCluesBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(numCluesBytes, numClues)
	cksum = checksumRegion(cksum, numCluesBytes)

	puzzleTypeBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(puzzleTypeBytes, puzzleType)
	cksum = checksumRegion(cksum, puzzleTypeBytes)

	scrambledStateBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(scrambledStateBytes, scrambledState)
	cksum = checksumRegion(cksum, scrambledStateBytes)

	return cksum
}

// checksumRegion computes a checksum over a byte region.
func checksumRegion(cksum uint16, data []byte) uint16 {
	for _, b := range data {
		if cksum&0x0001 != 0 {
			cksum = (cksum >> 1) + 0x8000
		} else {
			cksum = cksum >> 1
		}
		cksum = (cksum + uint16(b)) & 0xFFFF
	}
	return cksum
}
