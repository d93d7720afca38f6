package algo

import (
	"testing"

	"github.com/huangsam/teamcap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ws(id string, raw float64) schema.WorkloadScore {
	return schema.WorkloadScore{PersonID: id, RawScore: raw, Status: ClassifyWorkload(raw, schema.GetDefaultThresholds())}
}

func TestSummarizeTeam(t *testing.T) {
	scores := []schema.WorkloadScore{ws("carol", 40), ws("alice", 120), ws("bob", 85), ws("dan", 40)}
	summary := SummarizeTeam("platform", scores, schema.GetDefaultThresholds())

	assert.Equal(t, "platform", summary.Team)
	assert.Equal(t, 4, summary.TeamSize)
	assert.Equal(t, 1, summary.Overloaded)
	assert.Equal(t, 1, summary.AtCapacity)
	assert.Equal(t, 2, summary.Healthy)
	assert.InDelta(t, 71.25, summary.AverageWorkload, 0.001)
	assert.InDelta(t, 33.6108, summary.Variance, 0.001)
	assert.False(t, summary.Balanced)

	require.Len(t, summary.Members, 4)
	assert.Equal(t, []string{"alice", "bob", "carol", "dan"}, personIDs(summary.Members))

	require.Len(t, summary.Suggestions, 1)
	assert.Equal(t, "alice", summary.Suggestions[0].From)
	assert.Equal(t, "carol", summary.Suggestions[0].To, "ties resolve to the lower person id")
	assert.Contains(t, summary.Suggestions[0].Recommendation, "Move work from alice")
}

func TestSummarizeTeamSmall(t *testing.T) {
	summary := SummarizeTeam("solo", []schema.WorkloadScore{ws("alice", 150)}, schema.GetDefaultThresholds())
	assert.Equal(t, 0.0, summary.Variance, "fewer than two members have no spread")
	assert.True(t, summary.Balanced)
	assert.Empty(t, summary.Suggestions)

	empty := SummarizeTeam("none", nil, schema.GetDefaultThresholds())
	assert.Equal(t, 0, empty.TeamSize)
	assert.Equal(t, 0.0, empty.AverageWorkload)
}

func TestSuggestRebalancing(t *testing.T) {
	tests := []struct {
		name   string
		scores []schema.WorkloadScore
		want   [][2]string
	}{
		{
			name:   "gap too small",
			scores: []schema.WorkloadScore{ws("a", 100), ws("b", 75)},
			want:   nil,
		},
		{
			name:   "least loaded healthy first",
			scores: []schema.WorkloadScore{ws("a", 130), ws("b", 20), ws("c", 60)},
			want:   [][2]string{{"a", "b"}},
		},
		{
			name:   "one suggestion per overloaded member",
			scores: []schema.WorkloadScore{ws("a", 110), ws("b", 150), ws("c", 10)},
			want:   [][2]string{{"b", "c"}, {"a", "c"}},
		},
		{
			name:   "no healthy members",
			scores: []schema.WorkloadScore{ws("a", 110), ws("b", 90)},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestRebalancing(tt.scores)
			var pairs [][2]string
			for _, s := range got {
				pairs = append(pairs, [2]string{s.From, s.To})
			}
			assert.Equal(t, tt.want, pairs)
		})
	}
}

func personIDs(scores []schema.WorkloadScore) []string {
	ids := make([]string, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.PersonID)
	}
	return ids
}
