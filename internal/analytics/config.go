package analytics

import "transitpulse.org/internal/models"

// Config carries the immutable factor tables behind every derived
// metric. Injected into the Analyzer so tests can substitute values.
type Config struct {
	// Efficiency factor weights, summing to 1.
	EfficiencyWeights EfficiencyWeights

	// Severity-to-score tables for the efficiency factors.
	SpeedScores     map[models.Severity]float64
	SafetyPenalties map[models.Severity]float64
	ComfortScores   map[models.Severity]float64

	// Defaults applied when a factor has no supporting reports.
	DefaultReliability float64
	DefaultSpeed       float64
	DefaultSafety      float64
	DefaultComfort     float64

	// Cost model: fares at or below CostNeutralFare score 100; every
	// unit above it costs CostPenaltyPerUnit points.
	CostNeutralFare    float64
	CostPenaltyPerUnit float64

	// Travel-time model.
	MinutesPerStop        float64
	MinimumTravelMinutes  float64
	WeatherFactor         float64
	TravelSeverityValues  map[models.Severity]float64
	HistoricalFactorFloor float64
	OptimisticBand        float64
	PessimisticBand       float64
	BaseConfidence        float64
	ConfidencePerReport   float64
	MaxConfidence         float64

	// Demand model.
	DemandPerReport        float64
	DemandWeatherFactor    float64
	DemandEventFactor      float64
	DemandBaseConfidence   float64
	DemandConfidencePerRpt float64

	// Recommendation model.
	PreferenceWeights   PreferenceWeights
	RecommendationFloor float64
}

// EfficiencyWeights weighs the six factors into the overall score.
type EfficiencyWeights struct {
	Reliability float64
	Speed       float64
	Safety      float64
	Comfort     float64
	Cost        float64
	Frequency   float64
}

// PreferenceWeights is the default user preference distribution. The
// report data does not yet support personalization; this is the
// extension point for it.
type PreferenceWeights struct {
	Efficiency  float64
	Safety      float64
	Cost        float64
	Convenience float64
}

// DefaultConfig returns the production factor tables.
func DefaultConfig() Config {
	return Config{
		EfficiencyWeights: EfficiencyWeights{
			Reliability: 0.25,
			Speed:       0.20,
			Safety:      0.25,
			Comfort:     0.15,
			Cost:        0.10,
			Frequency:   0.05,
		},
		SpeedScores: map[models.Severity]float64{
			models.SeverityLow:      80,
			models.SeverityMedium:   60,
			models.SeverityHigh:     40,
			models.SeverityCritical: 40,
		},
		SafetyPenalties: map[models.Severity]float64{
			models.SeverityLow:      5,
			models.SeverityMedium:   15,
			models.SeverityHigh:     30,
			models.SeverityCritical: 30,
		},
		ComfortScores: map[models.Severity]float64{
			models.SeverityLow:      90,
			models.SeverityMedium:   70,
			models.SeverityHigh:     50,
			models.SeverityCritical: 50,
		},
		DefaultReliability: 50,
		DefaultSpeed:       60,
		DefaultSafety:      80,
		DefaultComfort:     70,

		CostNeutralFare:    30,
		CostPenaltyPerUnit: 2,

		MinutesPerStop:       3,
		MinimumTravelMinutes: 5,
		WeatherFactor:        1.1,
		TravelSeverityValues: map[models.Severity]float64{
			models.SeverityLow:      1.0,
			models.SeverityMedium:   1.2,
			models.SeverityHigh:     1.5,
			models.SeverityCritical: 1.5,
		},
		HistoricalFactorFloor: 0.8,
		OptimisticBand:        0.8,
		PessimisticBand:       1.3,
		BaseConfidence:        50,
		ConfidencePerReport:   2,
		MaxConfidence:         95,

		DemandPerReport:        2,
		DemandWeatherFactor:    1.05,
		DemandEventFactor:      1.0,
		DemandBaseConfidence:   60,
		DemandConfidencePerRpt: 1.5,

		PreferenceWeights: PreferenceWeights{
			Efficiency:  0.4,
			Safety:      0.3,
			Cost:        0.2,
			Convenience: 0.1,
		},
		RecommendationFloor: 60,
	}
}
