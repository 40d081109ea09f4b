package engine

import (
	"sort"
	"strings"

	"github.com/oakford/clubstats/internal/store"
)

// MetricKind determines the computation strategy for a metric
type MetricKind string

const (
	// MetricDirect is a single stored field returned as-is
	MetricDirect MetricKind = "direct"
	// MetricDerived is computed from multiple stored fields via a pure formula
	MetricDerived MetricKind = "derived"
	// MetricRanked requires comparison across the whole player cohort
	MetricRanked MetricKind = "ranked"
)

// MetricSpec is a static registry entry for one canonical metric.
// Immutable, loaded once at startup.
type MetricSpec struct {
	Code   string
	Label  string
	Kind   MetricKind
	Fields []string // stored fields needed to compute the metric

	// RankField is the stored field ranked metrics order the cohort by
	RankField string

	// Formula computes a derived metric from one record. The second return
	// is false when the computation is guarded (e.g. zero denominator).
	Formula func(rec store.Record) (float64, bool)

	// GuardText is the defined wording used when Formula is guarded
	GuardText string

	// Verb is the phrasing used for direct values ("scored", "made")
	Verb string
}

// MetricMatch is one resolved metric. Alternatives is non-empty when the
// matched phrase is ambiguous; Spec is then the most likely interpretation
// and the synthesizer must name the alternatives explicitly.
type MetricMatch struct {
	Spec         *MetricSpec
	Alternatives []*MetricSpec
}

// metricSynonym maps one natural-language phrase to metric codes. More than
// one code marks the phrase as ambiguous, most likely interpretation first.
type metricSynonym struct {
	phrase string
	codes  []string
}

// MetricRegistry holds the metric specs and the synonym table
type MetricRegistry struct {
	specs    map[string]*MetricSpec
	synonyms []metricSynonym
}

// NewMetricRegistry builds the static metric registry. Synonyms are sorted
// longest phrase first so that "penalty conversion rate" resolves before a
// generic "penalties" match.
func NewMetricRegistry() *MetricRegistry {
	specs := map[string]*MetricSpec{
		"AllAPP":   {Code: "AllAPP", Label: "appearances", Kind: MetricDirect, Fields: []string{"appearances"}, Verb: "made"},
		"AllGSC":   {Code: "AllGSC", Label: "goals", Kind: MetricDirect, Fields: []string{"goals"}, Verb: "scored"},
		"AllASS":   {Code: "AllASS", Label: "assists", Kind: MetricDirect, Fields: []string{"assists"}, Verb: "provided"},
		"CardY":    {Code: "CardY", Label: "yellow cards", Kind: MetricDirect, Fields: []string{"yellow_cards"}, Verb: "picked up"},
		"CardR":    {Code: "CardR", Label: "red cards", Kind: MetricDirect, Fields: []string{"red_cards"}, Verb: "picked up"},
		"PenSC":    {Code: "PenSC", Label: "penalties", Kind: MetricDirect, Fields: []string{"penalties_scored"}, Verb: "scored"},
		"PenMS":    {Code: "PenMS", Label: "missed penalties", Kind: MetricDirect, Fields: []string{"penalties_missed"}, Verb: "had"},
		"MOM":      {Code: "MOM", Label: "man of the match awards", Kind: MetricDirect, Fields: []string{"motm_awards"}, Verb: "won"},
		"FanPTS":   {Code: "FanPTS", Label: "fantasy points", Kind: MetricDirect, Fields: []string{"fantasy_points"}, Verb: "collected"},
		"MatchPTS": {Code: "MatchPTS", Label: "match points", Kind: MetricDirect, Fields: []string{"match_points"}, Verb: "earned"},
		"PenConv": {
			Code: "PenConv", Label: "penalty conversion rate", Kind: MetricDerived,
			Fields: []string{"penalties_scored", "penalties_missed"},
			Formula: func(rec store.Record) (float64, bool) {
				scored := rec.Float("penalties_scored")
				missed := rec.Float("penalties_missed")
				if scored+missed == 0 {
					return 0, false
				}
				return scored / (scored + missed), true
			},
			GuardText: "no penalties recorded",
		},
		"GoalsPG": {
			Code: "GoalsPG", Label: "goals per game", Kind: MetricDerived,
			Fields: []string{"goals", "appearances"},
			Formula: func(rec store.Record) (float64, bool) {
				apps := rec.Float("appearances")
				if apps == 0 {
					return 0, false
				}
				return rec.Float("goals") / apps, true
			},
			GuardText: "no appearances recorded",
		},
		"TopAllGSC": {Code: "TopAllGSC", Label: "goals", Kind: MetricRanked, RankField: "goals", Fields: []string{"goals"}},
		"TopAllAPP": {Code: "TopAllAPP", Label: "appearances", Kind: MetricRanked, RankField: "appearances", Fields: []string{"appearances"}},
		"TopFanPTS": {Code: "TopFanPTS", Label: "fantasy points", Kind: MetricRanked, RankField: "fantasy_points", Fields: []string{"fantasy_points"}},
	}

	synonyms := []metricSynonym{
		{"penalty conversion rate", []string{"PenConv"}},
		{"penalty conversion", []string{"PenConv"}},
		{"conversion rate", []string{"PenConv"}},
		{"penalties scored", []string{"PenSC"}},
		{"penalties missed", []string{"PenMS"}},
		{"missed penalties", []string{"PenMS"}},
		{"penalties", []string{"PenSC"}},
		{"penalty", []string{"PenSC"}},
		{"goals per game", []string{"GoalsPG"}},
		{"scoring rate", []string{"GoalsPG"}},
		{"strike rate", []string{"GoalsPG"}},
		{"goal tally", []string{"AllGSC"}},
		{"goals", []string{"AllGSC"}},
		{"goal", []string{"AllGSC"}},
		{"scored", []string{"AllGSC"}},
		{"assists", []string{"AllASS"}},
		{"assist", []string{"AllASS"}},
		{"appearances", []string{"AllAPP"}},
		{"appearance", []string{"AllAPP"}},
		{"games played", []string{"AllAPP"}},
		{"caps", []string{"AllAPP"}},
		{"yellow cards", []string{"CardY"}},
		{"yellow card", []string{"CardY"}},
		{"bookings", []string{"CardY"}},
		{"booked", []string{"CardY"}},
		{"red cards", []string{"CardR"}},
		{"red card", []string{"CardR"}},
		{"sent off", []string{"CardR"}},
		{"man of the match", []string{"MOM"}},
		{"fantasy points", []string{"FanPTS"}},
		{"match points", []string{"MatchPTS"}},
		{"points", []string{"FanPTS", "MatchPTS"}},
		{"top scorer", []string{"TopAllGSC"}},
		{"leading scorer", []string{"TopAllGSC"}},
		{"most goals", []string{"TopAllGSC"}},
		{"most appearances", []string{"TopAllAPP"}},
		{"most games", []string{"TopAllAPP"}},
		{"most fantasy points", []string{"TopFanPTS"}},
	}

	sort.SliceStable(synonyms, func(i, j int) bool {
		return len(synonyms[i].phrase) > len(synonyms[j].phrase)
	})

	return &MetricRegistry{specs: specs, synonyms: synonyms}
}

// Spec returns the registry entry for a canonical code
func (r *MetricRegistry) Spec(code string) (*MetricSpec, bool) {
	spec, ok := r.specs[code]
	return spec, ok
}

// Resolve maps natural-language phrases in a normalized question to canonical
// metrics, longest phrase first. Matched spans are consumed so a shorter
// synonym cannot re-match inside a longer one.
func (r *MetricRegistry) Resolve(normalized string) []MetricMatch {
	var matches []MetricMatch
	seen := make(map[string]bool)
	working := normalized

	for _, syn := range r.synonyms {
		if !containsTerm(working, syn.phrase) {
			continue
		}
		working = strings.Replace(" "+working+" ", " "+syn.phrase+" ", " ", 1)
		working = strings.TrimSpace(working)

		primary := r.specs[syn.codes[0]]
		if primary == nil || seen[primary.Code] {
			continue
		}
		seen[primary.Code] = true

		match := MetricMatch{Spec: primary}
		for _, code := range syn.codes[1:] {
			if alt := r.specs[code]; alt != nil {
				match.Alternatives = append(match.Alternatives, alt)
			}
		}
		matches = append(matches, match)
	}

	return matches
}
