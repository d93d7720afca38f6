package algo

import (
	"fmt"
	"slices"

	"github.com/huangsam/teamcap/schema"
)

const (
	// trendTolerance is the relative change below which velocity counts as stable.
	trendTolerance = 0.10

	// minTrendSamples is the history length below which the trend is not trusted.
	minTrendSamples = 3

	// confidenceZ is the z-value of a 95% confidence range.
	confidenceZ = 1.96
)

// ComputeVelocity summarizes completed points per sprint, oldest entry first.
func ComputeVelocity(history []float64) (schema.VelocityStats, error) {
	if len(history) == 0 {
		return schema.VelocityStats{}, &schema.InsufficientDataError{What: "velocity history is empty"}
	}
	for i, v := range history {
		if v < 0 {
			return schema.VelocityStats{}, &schema.ValidationError{
				Field:  fmt.Sprintf("history[%d]", i),
				Reason: fmt.Sprintf("velocity cannot be negative (received %.2f)", v),
			}
		}
	}

	avg := mean(history)
	std := populationStdDev(history)
	stats := schema.VelocityStats{
		Average:         avg,
		Median:          median(history),
		StdDev:          std,
		Min:             slices.Min(history),
		Max:             slices.Max(history),
		SprintsAnalyzed: len(history),
		ConfidenceLow:   max(0, avg-confidenceZ*std),
		ConfidenceHigh:  avg + confidenceZ*std,
		Trend:           schema.StableTrend,
	}

	if len(history) < minTrendSamples {
		stats.LowConfidence = true
		return stats, nil
	}
	stats.Trend = velocityTrend(history)
	return stats, nil
}

// velocityTrend compares the mean of the recent half against the earlier entries.
func velocityTrend(history []float64) schema.Trend {
	split := len(history) - max(1, len(history)/2)
	earlier := mean(history[:split])
	recent := mean(history[split:])

	if earlier == 0 {
		if recent > 0 {
			return schema.ImprovingTrend
		}
		return schema.StableTrend
	}

	ratio := (recent - earlier) / earlier
	switch {
	case ratio > trendTolerance:
		return schema.ImprovingTrend
	case ratio < -trendTolerance:
		return schema.DecliningTrend
	default:
		return schema.StableTrend
	}
}
