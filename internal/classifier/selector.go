package classifier

import (
	"fmt"

	"github.com/raphaelgruber/crisis-assistant/internal/catalog"
	"github.com/raphaelgruber/crisis-assistant/internal/models"
)

// DefaultThreshold is the lowest confidence that still yields a specific procedure.
const DefaultThreshold = 0.05

// ProcedureSource resolves a category to its procedure record.
// *catalog.Catalog satisfies it.
type ProcedureSource interface {
	Procedure(categoryID string) (models.Procedure, bool)
}

// Select turns a classification into a response.
//
// Unknown categories and confidences below threshold produce a fallback.
// A matched category missing from source is a catalog integrity fault and is
// returned as an error wrapping catalog.ErrIntegrity.
func Select(result models.Classification, source ProcedureSource, threshold float64) (models.Response, error) {
	resp := models.Response{Classification: result}
	if !result.Known() || result.Confidence < threshold {
		resp.Fallback = true
		return resp, nil
	}

	p, ok := source.Procedure(result.CategoryID)
	if !ok {
		return models.Response{}, fmt.Errorf("%w: no procedure for scored category %q", catalog.ErrIntegrity, result.CategoryID)
	}
	resp.Procedure = &p
	return resp, nil
}
