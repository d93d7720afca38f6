package algo

import (
	"fmt"

	"github.com/huangsam/teamcap/schema"
)

// rebalanceGap is the minimum load difference that makes a move worth suggesting.
const rebalanceGap = 30.0

// SummarizeTeam aggregates the workload scores of one team.
func SummarizeTeam(team string, scores []schema.WorkloadScore, thresholds schema.Thresholds) schema.TeamSummary {
	summary := schema.TeamSummary{
		Team:       team,
		TeamSize:   len(scores),
		Thresholds: thresholds,
		Members:    RankWorkloads(scores, 0),
	}

	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		values = append(values, s.RawScore)
		switch s.Status {
		case schema.OverloadedStatus:
			summary.Overloaded++
		case schema.AtCapacityStatus:
			summary.AtCapacity++
		default:
			summary.Healthy++
		}
	}

	summary.AverageWorkload = mean(values)
	summary.Variance = populationStdDev(values)
	summary.Balanced = summary.Variance < thresholds.BalanceVariance
	summary.Suggestions = SuggestRebalancing(scores)
	return summary
}

// SuggestRebalancing pairs each overloaded member with the least loaded healthy member
// whose load is at least rebalanceGap points lower. Each overloaded member gets at most
// one suggestion.
func SuggestRebalancing(scores []schema.WorkloadScore) []schema.RebalanceSuggestion {
	var healthy []schema.WorkloadScore
	for _, s := range rankAscending(scores) {
		if s.Status == schema.HealthyStatus {
			healthy = append(healthy, s)
		}
	}

	var suggestions []schema.RebalanceSuggestion
	for _, over := range RankWorkloads(scores, 0) {
		if over.Status != schema.OverloadedStatus {
			continue
		}
		for _, candidate := range healthy {
			if over.RawScore-candidate.RawScore <= rebalanceGap {
				continue
			}
			suggestions = append(suggestions, schema.RebalanceSuggestion{
				From:     over.PersonID,
				To:       candidate.PersonID,
				FromLoad: over.RawScore,
				ToLoad:   candidate.RawScore,
				Recommendation: fmt.Sprintf("Move work from %s (%.0f%%) to %s (%.0f%%)",
					over.DisplayName(), over.RawScore, candidate.DisplayName(), candidate.RawScore),
			})
			break
		}
	}
	return suggestions
}
