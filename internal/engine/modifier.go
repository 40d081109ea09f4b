package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// seasonPattern matches explicit season expressions like "2024-25" or "2024/25"
var seasonPattern = regexp.MustCompile(`\b(20\d{2})[/-](\d{2})\b`)

// teamKeywords maps team qualifier phrases to the short names the store
// filters on. Longest phrase first.
var teamKeywords = []struct {
	phrase string
	team   string
}{
	{"first team", "1st XI"},
	{"second team", "2nd XI"},
	{"1st team", "1st XI"},
	{"2nd team", "2nd XI"},
	{"1st xi", "1st XI"},
	{"2nd xi", "2nd XI"},
	{"the 1s", "1st XI"},
	{"the 2s", "2nd XI"},
}

// DefaultModifiers is the documented modifier set applied when a question
// carries no explicit qualifier: the current season, all teams, all
// locations, all competitions.
func DefaultModifiers(currentSeason string) ModifierSet {
	return ModifierSet{SeasonYear: currentSeason}
}

// ExtractModifiers scans a normalized question for season, team, location
// and competition qualifiers. Extraction is independent of intent, entity
// and metric resolution, so a season qualifier can attach to any intent.
func ExtractModifiers(normalized, currentSeason string) ModifierSet {
	mods := DefaultModifiers(currentSeason)

	if m := seasonPattern.FindStringSubmatch(normalized); m != nil {
		mods.SeasonYear = m[1] + "-" + m[2]
	} else if containsTerm(normalized, "last season") {
		mods.SeasonYear = previousSeason(currentSeason)
	}

	for _, tk := range teamKeywords {
		if containsTerm(normalized, tk.phrase) {
			mods.Teams = appendUnique(mods.Teams, tk.team)
		}
	}

	switch {
	case containsTerm(normalized, "at home") || containsTerm(normalized, "home"):
		mods.Location = "home"
	case containsTerm(normalized, "away"):
		mods.Location = "away"
	}

	if !containsTerm(normalized, "all competitions") {
		if containsTerm(normalized, "league") {
			mods.CompetitionTypes = appendUnique(mods.CompetitionTypes, "league")
		}
		if containsTerm(normalized, "cup") {
			mods.CompetitionTypes = appendUnique(mods.CompetitionTypes, "cup")
		}
		if containsTerm(normalized, "friendly") || containsTerm(normalized, "friendlies") {
			mods.CompetitionTypes = appendUnique(mods.CompetitionTypes, "friendly")
		}
	}

	return mods
}

// HasExplicitSeason reports whether the question names a season itself
// rather than relying on the documented default.
func HasExplicitSeason(normalized string) bool {
	return seasonPattern.MatchString(normalized) ||
		containsTerm(normalized, "this season") ||
		containsTerm(normalized, "last season")
}

// previousSeason shifts a season year expression back by one, e.g.
// "2025-26" -> "2024-25". Unparseable input falls through unchanged.
func previousSeason(season string) string {
	parts := strings.SplitN(season, "-", 2)
	if len(parts) != 2 {
		return season
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return season
	}

	return fmt.Sprintf("%d-%02d", start-1, (start)%100)
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
