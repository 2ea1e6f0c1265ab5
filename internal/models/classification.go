package models

import "slices"

// UnknownCategory is reported when no keyword matched the query.
const UnknownCategory = "unknown"

// KeywordEntry is the ordered list of trigger phrases for one category.
type KeywordEntry struct {
	CategoryID string
	Phrases    []string
}

// KeywordTable maps categories to trigger phrases in catalog order.
// The order is significant: it breaks scoring ties.
type KeywordTable []KeywordEntry

// Phrases returns the trigger phrases of a category.
func (t KeywordTable) Phrases(categoryID string) ([]string, bool) {
	for _, e := range t {
		if e.CategoryID == categoryID {
			return e.Phrases, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the table.
func (t KeywordTable) Clone() KeywordTable {
	out := make(KeywordTable, len(t))
	for i, e := range t {
		out[i] = KeywordEntry{CategoryID: e.CategoryID, Phrases: slices.Clone(e.Phrases)}
	}
	return out
}

// Classification is the outcome of scoring one query.
type Classification struct {
	CategoryID string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Known reports whether a category was matched.
func (c Classification) Known() bool {
	return c.CategoryID != "" && c.CategoryID != UnknownCategory
}

// Response is either a matched procedure or a request for generic guidance.
type Response struct {
	Classification Classification `json:"classification"`

	// Procedure is set only when Fallback is false.
	Procedure *Procedure `json:"procedure,omitempty"`

	// Fallback signals that no category was matched with enough confidence.
	Fallback bool `json:"fallback"`
}
