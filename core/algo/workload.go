// Package algo holds the pure capacity algorithms: workload scoring, team summaries,
// velocity statistics, ticket risk, sprint prediction, scenarios and coverage.
package algo

import (
	"maps"

	"github.com/huangsam/teamcap/schema"
)

// ScoreWorkload converts a person's raw metrics into a workload percentage.
//
// Each metric contributes value * weight / max_value, and the sum is scaled to percent.
// Metrics the snapshot does not report count as 0 and are listed in Missing.
// Scores are not capped, so a heavily loaded person can land well above 100.
func ScoreWorkload(snapshot schema.MetricSnapshot, weights schema.WeightConfig, thresholds schema.Thresholds) schema.WorkloadScore {
	breakdown := make(map[schema.MetricKey]float64, len(weights))
	var missing []schema.MetricKey
	var raw float64

	for _, key := range orderedKeys(weights) {
		w := weights[key]
		value, ok := snapshot.Values[key]
		if !ok {
			missing = append(missing, key)
			value = 0
		}
		if w.MaxValue <= 0 {
			// Rejected during config validation; skip rather than divide by zero.
			continue
		}
		contribution := 100.0 * value * w.Weight / w.MaxValue
		breakdown[key] = contribution
		raw += contribution
	}

	raw = max(raw, 0)
	return schema.WorkloadScore{
		PersonID:  snapshot.PersonID,
		Name:      snapshot.Name,
		RawScore:  raw,
		Status:    ClassifyWorkload(raw, thresholds),
		Breakdown: breakdown,
		Missing:   missing,
	}
}

// ClassifyWorkload maps a raw score onto a workload status.
func ClassifyWorkload(raw float64, thresholds schema.Thresholds) schema.WorkloadStatus {
	switch {
	case raw >= thresholds.Overload:
		return schema.OverloadedStatus
	case raw >= thresholds.AtRisk:
		return schema.AtCapacityStatus
	default:
		return schema.HealthyStatus
	}
}

// ScoreTeam scores every snapshot with the same weights and thresholds.
func ScoreTeam(snapshots []schema.MetricSnapshot, weights schema.WeightConfig, thresholds schema.Thresholds) []schema.WorkloadScore {
	scores := make([]schema.WorkloadScore, 0, len(snapshots))
	for _, s := range snapshots {
		scores = append(scores, ScoreWorkload(s, weights, thresholds))
	}
	return scores
}

// orderedKeys returns the weight keys in display order, followed by any unknown keys.
func orderedKeys(weights schema.WeightConfig) []schema.MetricKey {
	rest := maps.Clone(weights)
	keys := make([]schema.MetricKey, 0, len(weights))
	for _, key := range schema.AllMetricKeys {
		if _, ok := rest[key]; ok {
			keys = append(keys, key)
			delete(rest, key)
		}
	}
	return append(keys, sortedKeys(rest)...)
}
