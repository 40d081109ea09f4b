package engine

import "strings"

// abbreviations maps common shorthand tokens to their full forms. Applied
// after punctuation stripping, token by token.
var abbreviations = map[string]string{
	"pts":  "points",
	"apps": "appearances",
	"pens": "penalties",
	"avg":  "average",
	"mins": "minutes",
	"motm": "man of the match",
	"mom":  "man of the match",
	"yc":   "yellow cards",
	"rc":   "red cards",
	"vs":   "versus",
}

// Normalize lower-cases a question, strips punctuation variants, expands
// common abbreviations and collapses whitespace. Every pipeline stage after
// the tokenizer works on this form.
func Normalize(question string) string {
	q := strings.ToLower(question)

	// Unify apostrophe variants, then drop possessives so "bangs's goals"
	// and "bangs goals" normalize identically
	q = strings.ReplaceAll(q, "’", "'")
	q = strings.ReplaceAll(q, "'s", "")
	q = strings.ReplaceAll(q, "'", "")

	var b strings.Builder
	b.Grow(len(q))
	for _, r := range q {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '/', r == '-':
			// Keep season separators ("2024/25") intact
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for i, tok := range tokens {
		if full, ok := abbreviations[tok]; ok {
			tokens[i] = full
		}
	}

	return strings.Join(tokens, " ")
}

// containsTerm reports whether term appears in the normalized question on
// word boundaries. Both inputs must already be normalized.
func containsTerm(normalized, term string) bool {
	return strings.Contains(" "+normalized+" ", " "+term+" ")
}
