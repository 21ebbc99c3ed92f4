package providers

import (
	"context"
	"errors"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

// ErrAnalysisUnavailable signals that the analysis service could not
// produce a result after exhausting its retry budget, or that no
// credential is configured. Callers substitute fallback data instead of
// surfacing this to the client.
var ErrAnalysisUnavailable = errors.New("analysis service unavailable")

// AnalysisProvider produces a sound-characteristic analysis for a
// headphone brand and model.
type AnalysisProvider interface {
	Analyze(ctx context.Context, brand, model string) (*entities.AIAnalysis, error)
}
