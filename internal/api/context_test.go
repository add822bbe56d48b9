package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-insights-go/internal/types"
)

func TestBuildContext(t *testing.T) {
	t.Parallel()

	got := BuildContext(types.AnalyticsSummary{
		TotalEmployees:   3,
		AverageSentiment: 46.666,
		QuadrantDistribution: map[string]int{
			"Champion": 1,
			"At Risk":  2,
		},
		SentimentByRole: map[string]float64{
			"Sales":    30.0,
			"Engineer": 80.0,
		},
	})

	want := "Total Employees: 3\n" +
		"Average Sentiment: 46.7%\n" +
		"Quadrant Distribution: At Risk: 2, Champion: 1\n" +
		"Sentiment by Role: Engineer: 80.0%, Sales: 30.0%"
	assert.Equal(t, want, got)
}

func TestBuildContextEmpty(t *testing.T) {
	t.Parallel()

	got := BuildContext(types.AnalyticsSummary{
		QuadrantDistribution: map[string]int{},
		SentimentByRole:      map[string]float64{},
	})
	assert.Equal(t, "Total Employees: 0\nAverage Sentiment: 0.0%\nQuadrant Distribution: \nSentiment by Role: ", got)
}
