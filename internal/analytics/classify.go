package analytics

// Engagement quadrants derived from the sentiment score.
const (
	QuadrantChampion  = "Champion"
	QuadrantConcerned = "Concerned but active"
	QuadrantIsolated  = "Potentially Isolated"
	QuadrantAtRisk    = "At Risk"
)

// Classify maps a sentiment score to an engagement quadrant. Lower bounds
// are inclusive and evaluated highest first; anything below 30, including
// negative and NaN scores, lands in At Risk.
func Classify(score float64) string {
	switch {
	case score >= 70:
		return QuadrantChampion
	case score >= 50:
		return QuadrantConcerned
	case score >= 30:
		return QuadrantIsolated
	default:
		return QuadrantAtRisk
	}
}
