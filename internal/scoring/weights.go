package scoring

import "transitpulse.org/internal/models"

// Dimension names a score-vector axis.
type Dimension string

const (
	DimReliability Dimension = "reliability"
	DimSafety      Dimension = "safety"
	DimPunctuality Dimension = "punctuality"
	DimComfort     Dimension = "comfort"
)

// Weights is the immutable configuration driving aggregation: how hard
// each severity hits, and how each report type spreads its impact
// across the score dimensions. Injected so tests can substitute tables.
type Weights struct {
	Severity      map[models.Severity]float64
	TypeSpread    map[models.ReportType]map[Dimension]float64
	DefaultSpread map[Dimension]float64
	ImpactScale   float64
}

// DefaultWeights returns the production weight tables.
func DefaultWeights() Weights {
	return Weights{
		Severity: map[models.Severity]float64{
			models.SeverityLow:      1,
			models.SeverityMedium:   2,
			models.SeverityHigh:     3,
			models.SeverityCritical: 4,
		},
		TypeSpread: map[models.ReportType]map[Dimension]float64{
			models.ReportTypeDelay: {
				DimReliability: 0.4,
				DimPunctuality: 0.6,
			},
			models.ReportTypeSafety: {
				DimSafety: 1.0,
			},
			models.ReportTypeCrowding: {
				DimComfort:     0.8,
				DimReliability: 0.2,
			},
			models.ReportTypeBreakdown: {
				DimReliability: 0.6,
				DimSafety:      0.4,
			},
		},
		DefaultSpread: map[Dimension]float64{
			DimReliability: 0.25,
			DimSafety:      0.25,
			DimPunctuality: 0.25,
			DimComfort:     0.25,
		},
		ImpactScale: 0.5,
	}
}

// SpreadFor returns the dimension distribution for a report type,
// falling back to the even spread for unrecognized types.
func (w Weights) SpreadFor(t models.ReportType) map[Dimension]float64 {
	if spread, ok := w.TypeSpread[t]; ok {
		return spread
	}
	return w.DefaultSpread
}

// SeverityWeight returns the numeric weight for a severity, defaulting
// to the low weight for unrecognized values.
func (w Weights) SeverityWeight(s models.Severity) float64 {
	if weight, ok := w.Severity[s]; ok {
		return weight
	}
	return w.Severity[models.SeverityLow]
}
