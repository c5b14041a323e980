// Package confidence folds heterogeneous phase confidence signals into one
// qualitative verdict.
package confidence

import "github.com/nmachari/weaver/pkg/domain"

// Known signal sources. Phases publish only the signals they produced;
// absent signals are simply not averaged.
const (
	SourcePatternSignificance    = "pattern_significance"
	SourceAverageCorrelation     = "average_correlation"
	SourceVerificationConfidence = "average_verification_confidence"
)

// Signal is one phase's confidence contribution.
type Signal struct {
	Source string
	Value  float64
}

// Synthesize averages whatever signals are present and maps the result to
// a qualitative level. No signals is a valid degenerate case: overall 0.0,
// level very_low.
func Synthesize(signals ...Signal) domain.ConfidenceReport {
	report := domain.ConfidenceReport{
		Components: make([]domain.ConfidenceInput, 0, len(signals)),
	}
	sum := 0.0
	for _, signal := range signals {
		report.Components = append(report.Components, domain.ConfidenceInput{
			Source: signal.Source,
			Value:  signal.Value,
		})
		sum += signal.Value
	}
	if len(signals) > 0 {
		report.Overall = sum / float64(len(signals))
	}
	report.Level = Level(report.Overall)
	return report
}

// Level maps a numeric confidence onto its qualitative bucket.
func Level(score float64) domain.ConfidenceLevel {
	switch {
	case score >= 0.8:
		return domain.ConfidenceHigh
	case score >= 0.6:
		return domain.ConfidenceMedium
	case score >= 0.4:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceVeryLow
	}
}
