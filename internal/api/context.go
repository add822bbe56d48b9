package api

import (
	"fmt"
	"sort"
	"strings"

	"hr-insights-go/internal/types"
)

// BuildContext renders the summary into the fixed-format text block handed
// to the AI service. Map keys are sorted so the block is deterministic.
func BuildContext(s types.AnalyticsSummary) string {
	quadrants := make([]string, 0, len(s.QuadrantDistribution))
	for _, k := range sortedKeys(s.QuadrantDistribution) {
		quadrants = append(quadrants, fmt.Sprintf("%s: %d", k, s.QuadrantDistribution[k]))
	}

	roles := make([]string, 0, len(s.SentimentByRole))
	for _, k := range sortedKeys(s.SentimentByRole) {
		roles = append(roles, fmt.Sprintf("%s: %.1f%%", k, s.SentimentByRole[k]))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Employees: %d\n", s.TotalEmployees)
	fmt.Fprintf(&b, "Average Sentiment: %.1f%%\n", s.AverageSentiment)
	fmt.Fprintf(&b, "Quadrant Distribution: %s\n", strings.Join(quadrants, ", "))
	fmt.Fprintf(&b, "Sentiment by Role: %s", strings.Join(roles, ", "))
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
