package catalog

import "errors"

// Sentinel errors for catalog operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrIntegrity indicates the catalog document breaks the pairing between
	// keyword lists and procedure records, or holds an unusable record.
	// It is a configuration fault and is never recovered from silently.
	ErrIntegrity = errors.New("catalog integrity violation")

	// ErrUnknownCategory indicates a lookup for a category the catalog does not hold.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrWatchEmbedded is returned when watching is requested for the built-in catalog.
	ErrWatchEmbedded = errors.New("the built-in catalog cannot be watched")
)
