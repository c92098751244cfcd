package layout

import (
	"encoding/json"
	"strings"
)

// wordKeys and clueKeys are the accepted field aliases, tried in order.
var wordKeys = []string{"word", "answer", "solution", "text", "entry"}
var clueKeys = []string{"clue", "question", "prompt", "hint", "definition"}

// NormalizeConfig bounds what Normalize will accept.
type NormalizeConfig struct {
	MinWordLen int
}

// DefaultNormalizeConfig matches the engine's interface contract.
func DefaultNormalizeConfig() NormalizeConfig {
	return NormalizeConfig{MinWordLen: MinWordLen}
}

// Normalize turns raw, caller-supplied JSON into a canonical entry list.
// raw must decode to a JSON array of objects. Each object's word is read
// from the first present of wordKeys, uppercased, and stripped of every
// byte that is not A-Z; its clue is read from the first present of
// clueKeys and trimmed of surrounding whitespace. Entries whose word ends
// up shorter than cfg.MinWordLen, longer than MaxWordLen, or whose clue
// ends up empty are dropped.
//
// Normalize returns NoValidEntries if every candidate was dropped, and
// InvalidInputShape if raw does not decode to an array of objects.
func Normalize(raw json.RawMessage, cfg NormalizeConfig) ([]Entry, error) {
	if cfg.MinWordLen <= 0 {
		cfg.MinWordLen = MinWordLen
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, newError(InvalidInputShape, "input must be a JSON array of objects: %v", err)
	}

	entries := make([]Entry, 0, len(records))
	for i, rec := range records {
		word := sanitizeWord(firstString(rec, wordKeys))
		clue := strings.TrimSpace(firstString(rec, clueKeys))

		if len(word) < cfg.MinWordLen || len(word) > MaxWordLen || clue == "" {
			continue
		}

		entries = append(entries, Entry{
			Word:          word,
			Clue:          clue,
			OriginalIndex: i,
		})
	}

	if len(entries) == 0 {
		return nil, newError(NoValidEntries, "no entry in the input had both a usable word and a non-empty clue")
	}

	return entries, nil
}

// firstString returns the first key in keys present in rec with a string
// value; a present-but-non-string value coerces to "".
func firstString(rec map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return ""
		}
		return s
	}
	return ""
}

// sanitizeWord uppercases s and deletes every byte that is not A-Z.
func sanitizeWord(s string) string {
	s = strings.ToUpper(s)
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			out = append(out, c)
		}
	}
	return string(out)
}
