package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"hr-insights-go/internal/types"
)

// DefaultScore is substituted when a row carries no usable sentiment score.
const DefaultScore = 50.0

// normalize turns one untyped store row into an EmployeeRecord. Every field
// has a total fallback, so normalization cannot reject a row:
//
//	employee_id          -> row ordinal
//	employee_name        -> "Employee <ordinal>"
//	full_analysis        -> comment -> ""
//	employee_role        -> "Unknown"
//	positive_percentage  -> 50.0 (also on parse failure, NaN, ±Inf)
//	quadrant             -> Classify(score); trusted verbatim when present
func normalize(ordinal int, row map[string]string) types.EmployeeRecord {
	score := parseScore(row["positive_percentage"])

	id := parseID(row["employee_id"], ordinal)

	name := strings.TrimSpace(row["employee_name"])
	if name == "" {
		name = fmt.Sprintf("Employee %d", ordinal)
	}

	content := row["full_analysis"]
	if content == "" {
		content = row["comment"]
	}

	role := strings.TrimSpace(row["employee_role"])
	if role == "" {
		role = "Unknown"
	}

	quadrant := strings.TrimSpace(row["quadrant"])
	if quadrant == "" {
		quadrant = Classify(score)
	}

	return types.EmployeeRecord{
		ID:             id,
		EmployeeID:     id,
		EmployeeName:   name,
		Content:        content,
		Role:           role,
		SentimentScore: score,
		Quadrant:       quadrant,
	}
}

func parseScore(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return DefaultScore
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultScore
	}
	return v
}

func parseID(raw string, ordinal int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ordinal
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// seed files sometimes carry IDs as "123.0"
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return ordinal
}
