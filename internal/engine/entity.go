package engine

import (
	"sort"
	"strings"
)

// ResolveEntities extracts name spans from a normalized question and
// resolves them against the club roster. Full-name matches win over
// single-token matches, longest name first, so "Luke Bangs" is preferred
// over a bare "Bangs" when both would hit. Single-token matches are only
// accepted when the token identifies exactly one roster member; ambiguous
// tokens are rejected rather than guessed.
func ResolveEntities(normalized string, roster *Roster, userContext string) []ResolvedEntity {
	if roster == nil {
		return nil
	}

	var resolved []ResolvedEntity
	seen := make(map[string]bool)
	working := normalized

	add := func(e ResolvedEntity) {
		if seen[e.CanonicalName] {
			return
		}
		seen[e.CanonicalName] = true
		resolved = append(resolved, e)
	}

	// Full-name pass, longest roster name first to avoid partial collisions
	players := make([]string, len(roster.Players))
	copy(players, roster.Players)
	sort.SliceStable(players, func(i, j int) bool {
		return len(players[i]) > len(players[j])
	})

	for _, name := range players {
		norm := Normalize(name)
		if norm == "" || !containsTerm(working, norm) {
			continue
		}
		add(ResolvedEntity{
			RawSpan:         norm,
			CanonicalName:   name,
			EntityType:      "player",
			MatchConfidence: 1.0,
		})
		// Blank the span so shorter names cannot re-match inside it
		working = strings.Replace(" "+working+" ", " "+norm+" ", " ", 1)
		working = strings.TrimSpace(working)
	}

	// Team names match the same way
	for _, name := range roster.Teams {
		norm := Normalize(name)
		if norm == "" || !containsTerm(working, norm) {
			continue
		}
		add(ResolvedEntity{
			RawSpan:         norm,
			CanonicalName:   name,
			EntityType:      "team",
			MatchConfidence: 1.0,
		})
		working = strings.Replace(" "+working+" ", " "+norm+" ", " ", 1)
		working = strings.TrimSpace(working)
	}

	// Single-token fallback only when no full name matched
	if len(resolved) == 0 {
		for _, tok := range strings.Fields(working) {
			owners := tokenOwners(tok, roster.Players)
			if len(owners) != 1 {
				// Zero owners: not a name. Two or more: ambiguous, rejected.
				continue
			}
			add(ResolvedEntity{
				RawSpan:         tok,
				CanonicalName:   owners[0],
				EntityType:      "player",
				MatchConfidence: 0.7,
			})
		}
	}

	// The user context hint is a high-confidence candidate when its name
	// appears in the question, and a bias when nothing else resolved
	if userContext != "" {
		if hinted, ok := rosterLookup(userContext, roster.Players); ok {
			hintNorm := Normalize(hinted)
			if containsTerm(normalized, hintNorm) {
				add(ResolvedEntity{
					RawSpan:         hintNorm,
					CanonicalName:   hinted,
					EntityType:      "player",
					MatchConfidence: 1.0,
				})
			} else if len(resolved) == 0 {
				add(ResolvedEntity{
					RawSpan:         hintNorm,
					CanonicalName:   hinted,
					EntityType:      "player",
					MatchConfidence: 0.9,
				})
			}
		}
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].MatchConfidence > resolved[j].MatchConfidence
	})

	return resolved
}

// tokenOwners returns the roster members whose first or last name token
// equals tok. Tokens shorter than three characters are ignored; they are
// too noisy to be names.
func tokenOwners(tok string, players []string) []string {
	if len(tok) < 3 {
		return nil
	}

	var owners []string
	for _, name := range players {
		for _, part := range strings.Fields(Normalize(name)) {
			if part == tok {
				owners = append(owners, name)
				break
			}
		}
	}
	return owners
}

// rosterLookup resolves a free-form hint (full or partial name) to a
// canonical roster name. The hint must identify exactly one member.
func rosterLookup(hint string, players []string) (string, bool) {
	hintNorm := Normalize(hint)
	if hintNorm == "" {
		return "", false
	}

	for _, name := range players {
		if Normalize(name) == hintNorm {
			return name, true
		}
	}

	var partial []string
	for _, name := range players {
		if strings.Contains(Normalize(name), hintNorm) {
			partial = append(partial, name)
		}
	}
	if len(partial) == 1 {
		return partial[0], true
	}

	return "", false
}
