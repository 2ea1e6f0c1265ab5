// Package classifier maps free-text emergency descriptions to catalog
// categories with weighted keyword scoring, and decides between a specific
// procedure and generic guidance.
package classifier

import (
	"strings"

	"github.com/raphaelgruber/crisis-assistant/internal/models"
)

// Weights awarded to a single phrase. Only the highest applicable tier counts.
const (
	ExactWeight     = 3 // trimmed query equals the phrase
	WordWeight      = 2 // phrase appears between spaces
	SubstringWeight = 1 // phrase appears anywhere
)

// CategoryScore is the accumulated score of one category for one query.
type CategoryScore struct {
	CategoryID string `json:"category"`
	Score      int    `json:"score"`
	Phrases    int    `json:"phrases"`
}

// Score returns the score of every category in table order.
func Score(query string, table models.KeywordTable) []CategoryScore {
	lower := strings.ToLower(query)
	trimmed := strings.TrimSpace(lower)
	padded := " " + lower + " "

	scores := make([]CategoryScore, len(table))
	for i, e := range table {
		total := 0
		for _, phrase := range e.Phrases {
			total += phraseWeight(lower, trimmed, padded, phrase)
		}
		scores[i] = CategoryScore{CategoryID: e.CategoryID, Score: total, Phrases: len(e.Phrases)}
	}
	return scores
}

func phraseWeight(lower, trimmed, padded, phrase string) int {
	switch {
	case trimmed == phrase:
		return ExactWeight
	case strings.Contains(padded, " "+phrase+" "):
		return WordWeight
	case strings.Contains(lower, phrase):
		return SubstringWeight
	default:
		return 0
	}
}

// Classify picks the best scoring category for query.
//
// The strictly highest score wins and ties go to the earliest category in the
// table. Confidence is score / (phrases * ExactWeight), capped at 1. A query
// that matches nothing is reported as models.UnknownCategory with confidence 0.
func Classify(query string, table models.KeywordTable) models.Classification {
	return Best(Score(query, table))
}

// Best applies the winner and confidence rules of Classify to precomputed scores.
func Best(scores []CategoryScore) models.Classification {
	var best *CategoryScore
	for i := range scores {
		if scores[i].Score > 0 && (best == nil || scores[i].Score > best.Score) {
			best = &scores[i]
		}
	}
	if best == nil || best.Phrases == 0 {
		return models.Classification{CategoryID: models.UnknownCategory}
	}

	confidence := float64(best.Score) / float64(best.Phrases*ExactWeight)
	return models.Classification{
		CategoryID: best.CategoryID,
		Confidence: min(confidence, 1.0),
	}
}
