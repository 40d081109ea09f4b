package engine

// IntentKind is the classified purpose of a question
type IntentKind string

const (
	IntentPlayer       IntentKind = "player"
	IntentTeam         IntentKind = "team"
	IntentClub         IntentKind = "club"
	IntentRanking      IntentKind = "ranking"
	IntentRecord       IntentKind = "record"
	IntentUnclassified IntentKind = "unclassified"
)

// Confidence is a three-tier classification of how well-grounded an answer is.
// Raw scores never reach the caller.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// QuestionContext carries the raw question plus an optional hint (e.g. a
// pre-selected player name) used to bias entity resolution. Created per request.
type QuestionContext struct {
	Question    string `json:"question"`
	UserContext string `json:"user_context,omitempty"`
}

// ModifierSet holds the qualifiers attached to a question. All fields are
// optional; absence means "unfiltered".
type ModifierSet struct {
	SeasonYear       string   `json:"season_year,omitempty"`
	Teams            []string `json:"teams,omitempty"`
	Location         string   `json:"location,omitempty"` // "home" or "away"
	CompetitionTypes []string `json:"competition_types,omitempty"`
}

// QuestionAnalysis is the classifier's structured output. Created once per
// question and never mutated after creation.
type QuestionAnalysis struct {
	Type      IntentKind  `json:"type"`
	Entities  []string    `json:"entities"`
	Metrics   []string    `json:"metrics"`
	Modifiers ModifierSet `json:"modifiers"`
}

// ResolvedEntity is a name span resolved against the club roster
type ResolvedEntity struct {
	RawSpan         string  `json:"raw_span"`
	CanonicalName   string  `json:"canonical_name"`
	EntityType      string  `json:"entity_type"` // "player" or "team"
	MatchConfidence float64 `json:"match_confidence"`
}

// AnswerResult is the externally visible contract of the engine
type AnswerResult struct {
	Answer        string             `json:"answer"`
	Confidence    Confidence         `json:"confidence"`
	Visualization *VisualizationSpec `json:"visualization,omitempty"`
}

// VisualizationSpec describes an optional table or chart payload
type VisualizationSpec struct {
	Kind   string                   `json:"kind"` // "table" or "chart"
	Data   []map[string]interface{} `json:"data"`
	Config VisualizationConfig      `json:"config"`
}

// VisualizationConfig carries rendering hints for a visualization
type VisualizationConfig struct {
	Columns []VisualizationColumn `json:"columns,omitempty"`
}

// VisualizationColumn labels a single column of a table visualization
type VisualizationColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ProcessingDetails captures the full intermediate analysis of the most
// recently processed question. It is a single shared slot, overwritten per
// call, exposed read-only for diagnostics and testing.
type ProcessingDetails struct {
	QuestionAnalysis QuestionAnalysis   `json:"question_analysis"`
	ResolvedEntities []ResolvedEntity   `json:"resolved_entities"`
	Confidence       string             `json:"confidence"`
	TimingsMs        map[string]float64 `json:"timings_ms"`
}

// Roster is the current list of canonical player and team names used by the
// entity resolver
type Roster struct {
	Players []string `json:"players"`
	Teams   []string `json:"teams"`
}
