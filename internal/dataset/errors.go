package dataset

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable means no dataset could be loaded from the source or the
// local cache. The quiz runs with an empty pool until data is imported.
var ErrDataUnavailable = errors.New("no dataset available")

// InvalidJSONError is returned when a supplied manifest cannot be parsed or
// its root is not a JSON object.
type InvalidJSONError struct {
	Reason string
	Err    error
}

func (e *InvalidJSONError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid manifest JSON: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid manifest JSON: %s", e.Reason)
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

// FetchError wraps a failure to read the manifest source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch manifest %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
