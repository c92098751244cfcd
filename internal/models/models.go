// Package models holds the wire- and DB-facing types that sit around the
// pure layout engine: the identity a bearer token carries, and the
// metadata a generated layout picks up once it is persisted. Nothing in
// this package is imported by pkg/layout.
package models

import (
	"time"

	"github.com/xwordgen/engine/pkg/layout"
)

// User is the identity carried by a session, whether a named account or
// a guest issued a token on first contact.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName"`
	IsGuest     bool      `json:"isGuest"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Difficulty labels a generated puzzle for display purposes; the layout
// engine itself is difficulty-agnostic.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// StoredPuzzle wraps a layout.Result with the persistence metadata it
// picks up once a generation request has succeeded and been saved: who
// asked for it, under what title, and when.
type StoredPuzzle struct {
	ID         string         `json:"id"`
	AuthorID   string         `json:"authorId"`
	Title      string         `json:"title"`
	Difficulty Difficulty     `json:"difficulty"`
	Layout     *layout.Result `json:"layout"`
	CreatedAt  time.Time      `json:"createdAt"`
}
