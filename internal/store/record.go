package store

import "strconv"

// Record is a single retrieved row exposed as named fields. Values are
// coerced explicitly at this boundary so callers never deal with the
// dynamic shapes coming back from the database layer.
type Record map[string]interface{}

// Int returns the named field as an int, or 0 if absent or not numeric.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// Float returns the named field as a float64, or 0 if absent or not numeric.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

// Str returns the named field as a string, or "" if absent.
func (r Record) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Bool returns the named field as a bool, or false if absent.
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	}
	return false
}

// Has reports whether the named field is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}
