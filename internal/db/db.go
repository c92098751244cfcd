// Package db persists generated layouts. It is a thin adapter around
// Postgres and Redis: the engine package never imports it, and it
// never reaches back into pkg/layout beyond the Result type it stores.
package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/xwordgen/engine/internal/models"
	"github.com/xwordgen/engine/pkg/layout"
)

type Database struct {
	DB    *sql.DB
	Redis *redis.Client
}

func New(postgresURL, redisURL string) (*Database, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Database{DB: db, Redis: rdb}, nil
}

func (d *Database) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	return d.Redis.Close()
}

// InitSchema creates the generated_puzzles table.
func (d *Database) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generated_puzzles (
		id VARCHAR(36) PRIMARY KEY,
		author_id VARCHAR(36) NOT NULL,
		title VARCHAR(255) NOT NULL,
		difficulty VARCHAR(20) NOT NULL,
		entries JSONB NOT NULL,
		layout JSONB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_generated_puzzles_author_id ON generated_puzzles(author_id);
	CREATE INDEX IF NOT EXISTS idx_generated_puzzles_created_at ON generated_puzzles(created_at);
	`

	_, err := d.DB.Exec(schema)
	return err
}

// SavePuzzle persists a generated layout alongside the entries that
// produced it.
func (d *Database) SavePuzzle(puzzle *models.StoredPuzzle, entries []layout.Entry) error {
	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	layoutJSON, err := json.Marshal(puzzle.Layout)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	_, err = d.DB.Exec(`
		INSERT INTO generated_puzzles (id, author_id, title, difficulty, entries, layout, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, puzzle.ID, puzzle.AuthorID, puzzle.Title, puzzle.Difficulty, entriesJSON, layoutJSON, puzzle.CreatedAt)
	return err
}

// GetPuzzleByID fetches a previously saved layout by its ID.
func (d *Database) GetPuzzleByID(id string) (*models.StoredPuzzle, error) {
	puzzle := &models.StoredPuzzle{}
	var layoutJSON []byte

	err := d.DB.QueryRow(`
		SELECT id, author_id, title, difficulty, layout, created_at
		FROM generated_puzzles WHERE id = $1
	`, id).Scan(&puzzle.ID, &puzzle.AuthorID, &puzzle.Title, &puzzle.Difficulty, &layoutJSON, &puzzle.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result layout.Result
	if err := json.Unmarshal(layoutJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored layout: %w", err)
	}
	puzzle.Layout = &result

	return puzzle, nil
}

// ListPuzzlesByAuthor returns the most recent puzzles generated by an
// author, newest first.
func (d *Database) ListPuzzlesByAuthor(authorID string, limit, offset int) ([]*models.StoredPuzzle, error) {
	rows, err := d.DB.Query(`
		SELECT id, author_id, title, difficulty, layout, created_at
		FROM generated_puzzles WHERE author_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puzzles []*models.StoredPuzzle
	for rows.Next() {
		puzzle := &models.StoredPuzzle{}
		var layoutJSON []byte
		if err := rows.Scan(&puzzle.ID, &puzzle.AuthorID, &puzzle.Title, &puzzle.Difficulty, &layoutJSON, &puzzle.CreatedAt); err != nil {
			return nil, err
		}
		var result layout.Result
		if err := json.Unmarshal(layoutJSON, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored layout: %w", err)
		}
		puzzle.Layout = &result
		puzzles = append(puzzles, puzzle)
	}

	return puzzles, nil
}

// EntryCacheKey returns a stable cache key for a set of entries,
// independent of input ordering: two requests with the same words and
// clues (regardless of order) hash to the same key.
func EntryCacheKey(entries []layout.Entry) string {
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word + "\x00" + e.Clue
	}
	sort.Strings(words)

	h := sha256.New()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return "layout:" + hex.EncodeToString(h.Sum(nil))
}

// GetCachedLayout returns a previously cached layout for this entry
// set, if one exists.
func (d *Database) GetCachedLayout(ctx context.Context, entries []layout.Entry) (*layout.Result, error) {
	data, err := d.Redis.Get(ctx, EntryCacheKey(entries)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result layout.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached layout: %w", err)
	}
	return &result, nil
}

// CacheLayout stores a successful layout for this entry set for ttl.
func (d *Database) CacheLayout(ctx context.Context, entries []layout.Entry, result *layout.Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal layout for cache: %w", err)
	}
	return d.Redis.Set(ctx, EntryCacheKey(entries), data, ttl).Err()
}
