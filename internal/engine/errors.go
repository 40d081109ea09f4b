package engine

import "fmt"

// StoreUnavailableError signals that the data store could not be reached
// within the allowed timeout and retry budget. It never escapes
// ProcessQuestion; the synthesizer degrades to the fallback dataset instead.
type StoreUnavailableError struct {
	Cause error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("club records store unavailable: %v", e.Cause)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Cause
}
