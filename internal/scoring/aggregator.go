package scoring

import (
	"sort"
	"time"

	"transitpulse.org/internal/models"
)

// Aggregator converts a route's report history into a score vector.
// Aggregation is pure, idempotent, and order-independent: dimensions
// start at a perfect 5 and are eroded by verified evidence.
type Aggregator struct {
	weights Weights
}

func NewAggregator(weights Weights) *Aggregator {
	return &Aggregator{weights: weights}
}

// reportBucket groups identical (type, severity) reports so their
// combined impact is summed once, in a canonical order.
type reportBucket struct {
	reportType models.ReportType
	severity   models.Severity
}

// Aggregate filters reports to the scoreable subset (verified or
// resolved) and folds them into the four-dimension vector. An empty or
// all-unverified input yields the zero vector: no synthetic score
// without evidence.
//
// Reports are tallied into (type, severity) buckets and the weight
// tables folded over the buckets in sorted order, so the float64
// summation order is canonical: permuting the input, or a store
// returning rows differently ordered, yields a bit-identical vector.
func (a *Aggregator) Aggregate(routeID string, reports []models.Report, now time.Time) models.ScoreVector {
	counts := map[reportBucket]int{}
	count := 0

	for _, report := range reports {
		if !report.Scoreable() {
			continue
		}
		count++
		counts[reportBucket{report.Type, report.Severity}]++
	}

	if count == 0 {
		return models.ScoreVector{RouteID: routeID, LastCalculated: now}
	}

	buckets := make([]reportBucket, 0, len(counts))
	for bucket := range counts {
		buckets = append(buckets, bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].reportType != buckets[j].reportType {
			return buckets[i].reportType < buckets[j].reportType
		}
		return buckets[i].severity < buckets[j].severity
	})

	totals := map[Dimension]float64{}
	for _, bucket := range buckets {
		impact := -a.weights.SeverityWeight(bucket.severity) * a.weights.ImpactScale
		for dim, weight := range a.weights.SpreadFor(bucket.reportType) {
			totals[dim] += float64(counts[bucket]) * impact * weight
		}
	}

	vector := models.ScoreVector{
		RouteID:        routeID,
		Reliability:    clampScore(models.ScoreMax + totals[DimReliability]),
		Safety:         clampScore(models.ScoreMax + totals[DimSafety]),
		Punctuality:    clampScore(models.ScoreMax + totals[DimPunctuality]),
		Comfort:        clampScore(models.ScoreMax + totals[DimComfort]),
		TotalReports:   count,
		LastCalculated: now,
	}
	vector.Overall = (vector.Reliability + vector.Safety + vector.Punctuality + vector.Comfort) / 4
	return vector
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > models.ScoreMax {
		return models.ScoreMax
	}
	return v
}
