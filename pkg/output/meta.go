package output

import "time"

// Meta carries the display/persistence metadata a layout.Result itself
// never carries: the engine emits a pure grid and clue lists, with no
// notion of a title, author, or publication date. Exporters take a
// layout.Result plus a Meta and combine them into one file.
type Meta struct {
	ID          string
	Title       string
	Author      string
	Difficulty  string
	CreatedAt   time.Time
	PublishedAt *time.Time
}
