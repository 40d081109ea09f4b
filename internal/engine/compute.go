package engine

import (
	"sort"

	"github.com/oakford/clubstats/internal/store"
)

// SumField totals a numeric field across records
func SumField(records []store.Record, field string) float64 {
	var total float64
	for _, rec := range records {
		total += rec.Float(field)
	}
	return total
}

// Rate divides numerator by denominator. The second return is false for a
// zero denominator; callers must report the defined textual fallback instead
// of NaN or Infinity.
func Rate(numerator, denominator float64) (float64, bool) {
	if denominator == 0 {
		return 0, false
	}
	return numerator / denominator, true
}

// Rank returns a new slice sorted by the ranked field descending, ties
// broken alphabetically by the name field. Input records are not mutated.
func Rank(records []store.Record, field, nameField string) []store.Record {
	ranked := make([]store.Record, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := ranked[i].Float(field), ranked[j].Float(field)
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Str(nameField) < ranked[j].Str(nameField)
	})

	return ranked
}
