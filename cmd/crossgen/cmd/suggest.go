package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/xwordgen/engine/pkg/clues"
	"github.com/xwordgen/engine/pkg/clues/providers"
)

var (
	suggestTheme      string
	suggestCount      int
	suggestDifficulty string
	suggestLLM        string
	suggestCacheDB    string
	suggestOutput     string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest (word, clue) pairs for a theme, for piping into generate",
	Long: `Suggest drives the theme-prompt clue helper (pkg/clues): it asks an LLM
provider for candidate (word, clue) pairs related to a theme and writes
them as a JSON array in the exact shape layout.Normalize accepts.
Suggest never runs the layout engine itself; feed its output to
"generate --input" as a separate step.

Examples:
  # Ask Claude for 10 entries about astronomy
  crossgen suggest --theme astronomy --count 10 --output entries.json

  # Use a local Ollama model instead
  crossgen suggest --theme "80s movies" --count 8 --llm ollama --output entries.json`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVarP(&suggestTheme, "theme", "t", "", "theme to suggest entries for (required)")
	suggestCmd.Flags().IntVarP(&suggestCount, "count", "n", 10, "number of (word, clue) pairs to suggest")
	suggestCmd.Flags().StringVar(&suggestDifficulty, "difficulty", "medium", "clue difficulty (easy, medium, hard)")
	suggestCmd.Flags().StringVarP(&suggestLLM, "llm", "l", "anthropic", "LLM provider (anthropic, ollama)")
	suggestCmd.Flags().StringVar(&suggestCacheDB, "cache-db", "./clue_cache.db", "path to the clue cache sqlite database")
	suggestCmd.Flags().StringVarP(&suggestOutput, "output", "o", "", "output file for the suggested entries (default: stdout)")
	suggestCmd.MarkFlagRequired("theme")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	difficulty, err := parseClueDifficulty(suggestDifficulty)
	if err != nil {
		return err
	}

	cacheDB, err := sql.Open("sqlite3", suggestCacheDB)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer cacheDB.Close()

	if err := clues.InitDB(cacheDB); err != nil {
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	cache, err := clues.NewClueCache(cacheDB)
	if err != nil {
		return fmt.Errorf("failed to create clue cache: %w", err)
	}

	llmClient, err := newLLMClient(suggestLLM)
	if err != nil {
		return err
	}

	generator := clues.NewGenerator(cache, llmClient, difficulty)

	if verbosity > 0 {
		fmt.Printf("Requesting %d entries for theme %q via %s\n", suggestCount, suggestTheme, suggestLLM)
	}

	suggestions, err := generator.Suggest(context.Background(), suggestTheme, suggestCount)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	data, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	if suggestOutput == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(suggestOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("wrote %d suggestions to %s\n", len(suggestions), suggestOutput)
	return nil
}

func parseClueDifficulty(s string) (clues.Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return clues.DifficultyEasy, nil
	case "medium":
		return clues.DifficultyMedium, nil
	case "hard":
		return clues.DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %s (must be easy, medium, or hard)", s)
	}
}

func newLLMClient(provider string) (providers.LLMClient, error) {
	switch strings.ToLower(provider) {
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		return providers.NewAnthropicClient(providers.AnthropicConfig{
			APIKey: apiKey,
			Model:  providers.ModelHaiku,
		})
	case "ollama":
		return providers.NewOllamaClient(providers.OllamaConfig{})
	default:
		return nil, fmt.Errorf("invalid LLM provider: %s (must be anthropic or ollama)", provider)
	}
}
