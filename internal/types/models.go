package types

// EmployeeRecord is one normalized feedback row for a single employee.
type EmployeeRecord struct {
	ID             int     `json:"id"`
	EmployeeID     int     `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Content        string  `json:"content"`
	Role           string  `json:"role"`
	SentimentScore float64 `json:"sentiment_score"`
	Quadrant       string  `json:"quadrant"`
}

// AnalyticsSummary is the aggregate view over the current record set.
// Quadrants and roles absent from the data are absent from the maps.
type AnalyticsSummary struct {
	TotalEmployees       int                `json:"total_employees"`
	AverageSentiment     float64            `json:"average_sentiment"`
	QuadrantDistribution map[string]int     `json:"quadrant_distribution"`
	SentimentByRole      map[string]float64 `json:"sentiment_by_role"`
}
