package clues

import (
	"context"
	"fmt"
	"strings"

	"github.com/xwordgen/engine/pkg/clues/providers"
)

// Suggestion is one candidate (word, clue) pair produced from a theme
// prompt. Its field names deliberately match the aliases normalize
// accepts (word, clue) so a caller can marshal a slice of Suggestion
// straight into the normalizer's input shape.
type Suggestion struct {
	Word string `json:"word"`
	Clue string `json:"clue"`
}

// Generator orchestrates theme-based clue suggestion with caching. It
// never calls into pkg/layout: a caller takes its output and feeds it to
// layout.Normalize itself, preserving the engine's collaborator
// boundary.
type Generator struct {
	cache      *ClueCache
	llmClient  providers.LLMClient
	difficulty Difficulty
}

// NewGenerator creates a new clue generator. cache and llmClient may be
// nil; a nil llmClient means Suggest always fails with a descriptive
// error (cache-only mode has nothing to suggest from).
func NewGenerator(cache *ClueCache, llmClient providers.LLMClient, difficulty Difficulty) *Generator {
	return &Generator{
		cache:      cache,
		llmClient:  llmClient,
		difficulty: difficulty,
	}
}

// Suggest asks the LLM for count candidate (word, clue) pairs related to
// theme. Every successful suggestion is saved to the cache under its own
// word so a later cache-only lookup (via ClueCache.GetClue) can recall
// it; cache write failures are non-fatal.
func (g *Generator) Suggest(ctx context.Context, theme string, count int) ([]Suggestion, error) {
	if strings.TrimSpace(theme) == "" {
		return nil, fmt.Errorf("theme cannot be empty")
	}
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	if g.llmClient == nil {
		return nil, fmt.Errorf("no LLM client configured for theme suggestion")
	}

	prompt, err := buildThemePrompt(theme, count, g.difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	response, err := g.llmClient.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("LLM completion failed: %w", err)
	}

	suggestions, err := ParseThemeResponse(response, count)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if g.cache != nil {
		for _, s := range suggestions {
			if s.Word == "" || s.Clue == "" {
				continue
			}
			// Cache save failures shouldn't stop generation; the
			// suggestion is still returned to the caller.
			_ = g.cache.SaveClue(s.Word, s.Clue, string(g.difficulty))
		}
	}

	return suggestions, nil
}
