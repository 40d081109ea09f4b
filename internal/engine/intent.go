package engine

// IntentRule is one entry of the ordered classification table. A rule
// matches when at least one keyword appears, every required term appears
// and no forbidden term appears. Each matched keyword adds to the rule's
// specificity score.
type IntentRule struct {
	Intent    IntentKind
	Keywords  []string
	Required  []string
	Forbidden []string
}

// intentRules is evaluated top to bottom. The highest specificity wins;
// on a tie the earlier rule wins, which makes precedence explicit.
var intentRules = []IntentRule{
	{
		Intent: IntentRanking,
		Keywords: []string{
			"top", "most", "best", "highest", "leading", "leads",
			"compare", "versus", "more than",
		},
	},
	{
		Intent: IntentRecord,
		Keywords: []string{
			"record", "all time", "ever", "history", "historically",
		},
	},
	{
		Intent: IntentClub,
		Keywords: []string{
			"club", "squad", "everyone", "overall", "altogether",
			"as a whole", "in total",
		},
	},
	{
		Intent: IntentTeam,
		Keywords: []string{
			"first team", "second team", "1st team", "2nd team",
			"1st xi", "2nd xi", "the 1s", "the 2s", "team", "side",
		},
		Forbidden: []string{"top", "most", "best", "highest", "leading"},
	},
	{
		Intent: IntentPlayer,
		Keywords: []string{
			"how many", "how much", "what is", "what are", "whats",
			"did", "does", "has", "have", "scored", "played", "made",
		},
	},
}

// ClassifyIntent assigns a question type from the ordered rule table.
// Deterministic: identical input always yields identical classification.
// If no rule matches it returns IntentUnclassified, which forces the
// synthesizer into its fallback branch.
func ClassifyIntent(normalized string) IntentKind {
	best := IntentUnclassified
	bestScore := 0

	for _, rule := range intentRules {
		score := ruleScore(normalized, rule)
		if score > bestScore {
			best = rule.Intent
			bestScore = score
		}
	}

	return best
}

// ruleScore returns the number of matched keywords, or 0 if the rule does
// not apply at all.
func ruleScore(normalized string, rule IntentRule) int {
	for _, term := range rule.Forbidden {
		if containsTerm(normalized, term) {
			return 0
		}
	}
	for _, term := range rule.Required {
		if !containsTerm(normalized, term) {
			return 0
		}
	}

	score := 0
	for _, kw := range rule.Keywords {
		if containsTerm(normalized, kw) {
			score++
		}
	}
	return score
}
