package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/oakford/clubstats/internal/store"
)

// synthesisState drives the answer state machine. Every path terminates in
// an AnswerResult; the engine never leaves a question unanswered.
type synthesisState int

const (
	stateResolved synthesisState = iota
	statePartiallyResolved
	stateUnresolved
)

// synthesisInput bundles everything the synthesizer needs to word an answer
type synthesisInput struct {
	analysis       QuestionAnalysis
	entities       []ResolvedEntity
	metrics        []MetricMatch
	results        map[string][]store.Record
	fromFallback   bool
	storeDown      bool
	unresolvedTerm string
	currentSeason  string
}

// synthesize converts the pipeline's computed values into a natural-language
// answer using club vocabulary only. Storage and technical terms never reach
// the caller.
func synthesize(in synthesisInput) *AnswerResult {
	if in.storeDown && len(in.results) == 0 {
		return &AnswerResult{
			Answer:     "I'm currently unable to retrieve that club information, sorry. Please try again in a few minutes.",
			Confidence: ConfidenceLow,
		}
	}

	if len(in.metrics) == 0 {
		return synthesizeNoMetric(in)
	}

	primary := in.metrics[0]

	// A who-question with no names ranks the cohort even when the metric
	// phrase resolved as a direct stat ("who has the most assists")
	if primary.Spec.Kind == MetricRanked ||
		(in.analysis.Type == IntentRanking && len(in.entities) == 0) {
		return synthesizeRanked(in, primary)
	}

	if len(in.entities) == 0 {
		return synthesizeNoEntity(in, primary)
	}

	if len(in.entities) > 1 {
		return synthesizeComparison(in, primary)
	}

	return synthesizeSingle(in, primary, in.entities[0])
}

// synthesizeNoMetric handles questions where no statistic could be resolved
func synthesizeNoMetric(in synthesisInput) *AnswerResult {
	if len(in.entities) > 0 {
		name := in.entities[0].CanonicalName
		return &AnswerResult{
			Answer: fmt.Sprintf(
				"I can see you're asking about %s, but I'm not sure which club statistic you're after. You can ask about goals, assists, appearances, cards or fantasy points.",
				name),
			Confidence: ConfidenceMedium,
		}
	}

	return &AnswerResult{
		Answer:     "Sorry, I didn't quite catch that one. Try asking about goals, appearances, assists or fantasy points for any of our registered players.",
		Confidence: ConfidenceLow,
	}
}

// synthesizeNoEntity handles a resolved metric with no resolved name
func synthesizeNoEntity(in synthesisInput, primary MetricMatch) *AnswerResult {
	// Club-wide questions aggregate across the whole squad
	if records, ok := in.results[cohortKey]; ok && len(records) > 0 {
		total := SumField(records, primary.Spec.Fields[0])
		scope := scopePhrase(in.analysis.Modifiers, in.currentSeason)
		return &AnswerResult{
			Answer: joinSentence(fmt.Sprintf("Across the club we have %s %s",
				formatNumber(total), primary.Spec.Label), scope),
			Confidence: confidenceFor(stateResolved, in.fromFallback),
		}
	}

	if in.unresolvedTerm != "" {
		return &AnswerResult{
			Answer: fmt.Sprintf(
				"I don't recognise %s among our registered players, sorry. Double-check the spelling or try another club member.",
				in.unresolvedTerm),
			Confidence: ConfidenceLow,
		}
	}

	return &AnswerResult{
		Answer:     "Which player or team did you want that for? Give me a name and I'll check the club statistics.",
		Confidence: ConfidenceMedium,
	}
}

// synthesizeRanked answers cohort-wide questions like "who is the top scorer"
func synthesizeRanked(in synthesisInput, primary MetricMatch) *AnswerResult {
	records := in.results[cohortKey]
	if len(records) == 0 {
		return &AnswerResult{
			Answer:     "I don't have any club statistics to rank for that yet, sorry.",
			Confidence: ConfidenceLow,
		}
	}

	rankField := primary.Spec.RankField
	if rankField == "" {
		rankField = primary.Spec.Fields[0]
	}

	ranked := Rank(records, rankField, "name")
	leader := ranked[0]
	scope := scopePhrase(in.analysis.Modifiers, in.currentSeason)

	answer := joinSentence(fmt.Sprintf("Top of the %s chart is %s with %s",
		primary.Spec.Label, leader.Str("name"),
		formatNumber(leader.Float(rankField))), scope)
	if len(ranked) > 1 {
		runnerUp := ranked[1]
		answer = strings.TrimSuffix(answer, ".")
		answer += fmt.Sprintf(", ahead of %s on %s.",
			runnerUp.Str("name"), formatNumber(runnerUp.Float(rankField)))
	}

	state := stateResolved
	if len(primary.Alternatives) > 0 {
		alt := primary.Alternatives[0]
		answer = fmt.Sprintf("Taking that to mean %s - %s If you were after %s, just ask for those by name.",
			primary.Spec.Label, answer, alt.Label)
		state = statePartiallyResolved
	}

	limit := len(ranked)
	if limit > 5 {
		limit = 5
	}
	data := make([]map[string]interface{}, 0, limit)
	for _, rec := range ranked[:limit] {
		data = append(data, map[string]interface{}{
			"player": rec.Str("name"),
			"value":  rec.Float(rankField),
		})
	}

	return &AnswerResult{
		Answer:     answer,
		Confidence: confidenceFor(state, in.fromFallback),
		Visualization: &VisualizationSpec{
			Kind: "table",
			Data: data,
			Config: VisualizationConfig{Columns: []VisualizationColumn{
				{Key: "player", Label: "Player"},
				{Key: "value", Label: titleCase(primary.Spec.Label)},
			}},
		},
	}
}

// synthesizeComparison answers questions naming two or more club members
func synthesizeComparison(in synthesisInput, primary MetricMatch) *AnswerResult {
	scope := scopePhrase(in.analysis.Modifiers, in.currentSeason)

	type contender struct {
		name  string
		value float64
		known bool
	}

	contenders := make([]contender, 0, len(in.entities))
	for _, ent := range in.entities {
		records := in.results[ent.CanonicalName]
		c := contender{name: ent.CanonicalName}
		if len(records) > 0 {
			c.value = SumField(records, primary.Spec.Fields[0])
			c.known = true
		}
		contenders = append(contenders, c)
	}

	var parts []string
	data := make([]map[string]interface{}, 0, len(contenders))
	missing := false
	for _, c := range contenders {
		if !c.known {
			missing = true
			continue
		}
		parts = append(parts, fmt.Sprintf("%s has %s", c.name, formatNumber(c.value)))
		data = append(data, map[string]interface{}{"name": c.name, "value": c.value})
	}

	if len(parts) == 0 {
		return &AnswerResult{
			Answer:     "I couldn't find club records for those names, sorry.",
			Confidence: ConfidenceLow,
		}
	}

	answer := joinSentence(fmt.Sprintf("On %s, %s", primary.Spec.Label,
		strings.Join(parts, " and ")), scope)
	state := stateResolved
	if missing {
		answer = strings.TrimSuffix(answer, ".") +
			" - I couldn't find records for everyone you mentioned."
		state = statePartiallyResolved
	}

	// Ambiguous metrics name their interpretation here too, same as the
	// single-entity wording
	if len(primary.Alternatives) > 0 {
		alt := primary.Alternatives[0]
		answer = fmt.Sprintf("Taking that to mean %s - %s If you were after %s, just ask for those by name.",
			primary.Spec.Label, answer, alt.Label)
		state = statePartiallyResolved
	}

	return &AnswerResult{
		Answer:     answer,
		Confidence: confidenceFor(state, in.fromFallback),
		Visualization: &VisualizationSpec{
			Kind: "chart",
			Data: data,
			Config: VisualizationConfig{Columns: []VisualizationColumn{
				{Key: "name", Label: "Player"},
				{Key: "value", Label: titleCase(primary.Spec.Label)},
			}},
		},
	}
}

// synthesizeSingle answers a single-entity direct or derived metric question
func synthesizeSingle(in synthesisInput, primary MetricMatch, ent ResolvedEntity) *AnswerResult {
	records := in.results[ent.CanonicalName]
	if len(records) == 0 {
		return &AnswerResult{
			Answer: fmt.Sprintf(
				"There are no club records for %s %s yet, sorry.",
				ent.CanonicalName, scopePhrase(in.analysis.Modifiers, in.currentSeason)),
			Confidence: ConfidenceLow,
		}
	}

	scope := scopePhrase(in.analysis.Modifiers, in.currentSeason)

	var answer string
	state := stateResolved

	switch primary.Spec.Kind {
	case MetricDerived:
		answer = wordDerived(primary.Spec, ent.CanonicalName, records[0], scope)
	default:
		value := SumField(records, primary.Spec.Fields[0])
		answer = wordDirect(primary.Spec, ent.CanonicalName, value, scope)
	}

	// An ambiguous metric never becomes a bare unexplained number: the
	// chosen interpretation is named and the alternative offered.
	if len(primary.Alternatives) > 0 {
		alt := primary.Alternatives[0]
		answer = fmt.Sprintf("Taking that to mean %s - %s If you were after %s, just ask for those by name.",
			primary.Spec.Label, answer, alt.Label)
		state = statePartiallyResolved
	}

	return &AnswerResult{
		Answer:     answer,
		Confidence: confidenceFor(state, in.fromFallback),
	}
}

// wordDirect phrases a direct metric value
func wordDirect(spec *MetricSpec, name string, value float64, scope string) string {
	verb := spec.Verb
	if verb == "" {
		verb = "recorded"
	}
	return joinSentence(fmt.Sprintf("%s has %s %s %s", name, verb,
		formatNumber(value), spec.Label), scope)
}

// wordDerived phrases a derived metric, with the defined guard wording when
// the formula cannot produce a value
func wordDerived(spec *MetricSpec, name string, rec store.Record, scope string) string {
	value, ok := spec.Formula(rec)
	if !ok {
		return joinSentence(fmt.Sprintf("%s has %s", name, spec.GuardText), scope)
	}

	switch spec.Code {
	case "PenConv":
		scored := rec.Float("penalties_scored")
		attempts := scored + rec.Float("penalties_missed")
		sentence := joinSentence(fmt.Sprintf("%s has a penalty conversion rate of %s",
			name, formatPercent(value)), scope)
		return strings.TrimSuffix(sentence, ".") +
			fmt.Sprintf(", scoring %s of %s penalties.", formatNumber(scored), formatNumber(attempts))
	default:
		return joinSentence(fmt.Sprintf("%s is averaging %s %s", name,
			formatNumber(value), spec.Label), scope)
	}
}

// confidenceFor maps a synthesis state to its confidence tier. Fallback data
// caps the tier at medium because the figures may be stale.
func confidenceFor(state synthesisState, fromFallback bool) Confidence {
	switch state {
	case stateResolved:
		if fromFallback {
			return ConfidenceMedium
		}
		return ConfidenceHigh
	case statePartiallyResolved:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// scopePhrase words the modifier set in club vocabulary. The default scope
// reads "this season"; an empty season year means all seasons.
func scopePhrase(mods ModifierSet, currentSeason string) string {
	var parts []string

	switch {
	case mods.SeasonYear == "":
		parts = append(parts, "across all seasons")
	case mods.SeasonYear == currentSeason:
		parts = append(parts, "this season")
	default:
		parts = append(parts, fmt.Sprintf("in the %s season", mods.SeasonYear))
	}

	for _, team := range mods.Teams {
		parts = append(parts, fmt.Sprintf("for the %s", team))
	}

	switch mods.Location {
	case "home":
		parts = append(parts, "at home")
	case "away":
		parts = append(parts, "away from home")
	}

	if len(mods.CompetitionTypes) == 1 {
		switch mods.CompetitionTypes[0] {
		case "league":
			parts = append(parts, "in the league")
		case "cup":
			parts = append(parts, "in the cup")
		case "friendly":
			parts = append(parts, "in friendlies")
		}
	} else if len(mods.CompetitionTypes) > 1 {
		parts = append(parts, "in "+strings.Join(mods.CompetitionTypes, " and ")+" games")
	}

	return strings.Join(parts, " ")
}

// joinSentence appends a scope phrase and closes the sentence
func joinSentence(body, scope string) string {
	if scope == "" {
		return body + "."
	}
	return body + " " + scope + "."
}

// titleCase upper-cases the first letter of a label for column headings
func titleCase(label string) string {
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// formatNumber renders whole values without a decimal point
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatPercent renders a 0-1 rate as a whole percentage
func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
