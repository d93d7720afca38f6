package algo

import (
	"cmp"
	"slices"

	"github.com/huangsam/teamcap/schema"
)

// RankWorkloads returns a copy of scores sorted by raw score in descending order,
// ties broken by person id, trimmed to the top 'limit' entries. A limit of 0 or
// less keeps every entry.
func RankWorkloads(scores []schema.WorkloadScore, limit int) []schema.WorkloadScore {
	ranked := slices.Clone(scores)
	slices.SortStableFunc(ranked, func(a, b schema.WorkloadScore) int {
		if c := cmp.Compare(b.RawScore, a.RawScore); c != 0 {
			return c
		}
		return cmp.Compare(a.PersonID, b.PersonID)
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// RankRisks sorts ticket risks by score in descending order, ties broken by ticket id.
// The slice is sorted in place.
func RankRisks(risks []schema.RiskScore) []schema.RiskScore {
	slices.SortStableFunc(risks, func(a, b schema.RiskScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.TicketID, b.TicketID)
	})
	return risks
}

// MostOverloaded returns the n members with the highest scores.
func MostOverloaded(scores []schema.WorkloadScore, n int) []schema.WorkloadScore {
	if n <= 0 {
		return nil
	}
	return RankWorkloads(scores, n)
}

// AvailableCapacity returns the n members with the lowest scores, least loaded first.
func AvailableCapacity(scores []schema.WorkloadScore, n int) []schema.WorkloadScore {
	if n <= 0 {
		return nil
	}
	ranked := rankAscending(scores)
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

// rankAscending sorts a copy of scores least loaded first, ties broken by person id.
func rankAscending(scores []schema.WorkloadScore) []schema.WorkloadScore {
	ranked := slices.Clone(scores)
	slices.SortStableFunc(ranked, func(a, b schema.WorkloadScore) int {
		if c := cmp.Compare(a.RawScore, b.RawScore); c != 0 {
			return c
		}
		return cmp.Compare(a.PersonID, b.PersonID)
	})
	return ranked
}
