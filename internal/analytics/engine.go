// Package analytics holds the in-memory employee record set and computes
// the aggregate sentiment views served by the API.
package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"hr-insights-go/internal/logger"
	"hr-insights-go/internal/types"
)

// Source is the backing store contract: one flat read of the feedback
// table, each row as an untyped column map.
type Source interface {
	FetchAll(ctx context.Context) ([]map[string]string, error)
}

// Engine owns the record set. Construct one at startup and share it across
// handlers; the set is guarded so a reload publishes atomically and readers
// never observe a partial replacement.
type Engine struct {
	src Source
	log *logrus.Entry

	mu      sync.RWMutex
	records []types.EmployeeRecord
}

func New(src Source, log *logger.Logger) *Engine {
	return &Engine{
		src: src,
		log: log.WithComponent("analytics"),
	}
}

// Load replaces the whole record set from the backing store. On store
// failure the previous set is left untouched and the error is returned.
// A reachable-but-empty store is not an error: the empty set is installed
// and (0, nil) comes back, so callers can tell "down" from "no data".
func (e *Engine) Load(ctx context.Context) (int, error) {
	rows, err := e.src.FetchAll(ctx)
	if err != nil {
		e.log.WithError(err).Error("failed to load feedback records")
		return 0, fmt.Errorf("load feedback records: %w", err)
	}

	records := make([]types.EmployeeRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, normalize(i, row))
	}

	e.mu.Lock()
	e.records = records
	e.mu.Unlock()

	if len(records) == 0 {
		e.log.Warn("feedback table returned no rows")
	} else {
		e.log.WithField("records", len(records)).Info("feedback records loaded")
	}
	return len(records), nil
}

// Count reports the size of the current record set.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Records returns a copy of the current set. A non-empty quadrant filters
// by exact, case-sensitive match.
func (e *Engine) Records(quadrant string) []types.EmployeeRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.EmployeeRecord, 0, len(e.records))
	for _, r := range e.records {
		if quadrant != "" && r.Quadrant != quadrant {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AverageSentiment is the mean score over the current set, 0.0 when empty.
func (e *Engine) AverageSentiment() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return averageSentiment(e.records)
}

// QuadrantDistribution counts records per quadrant present in the data.
func (e *Engine) QuadrantDistribution() map[string]int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return quadrantDistribution(e.records)
}

// SentimentByRole is the mean score per role present in the data.
func (e *Engine) SentimentByRole() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return sentimentByRole(e.records)
}

// Summary composes the three aggregations plus the record count, computed
// fresh from the current set on every call.
func (e *Engine) Summary() types.AnalyticsSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return types.AnalyticsSummary{
		TotalEmployees:       len(e.records),
		AverageSentiment:     averageSentiment(e.records),
		QuadrantDistribution: quadrantDistribution(e.records),
		SentimentByRole:      sentimentByRole(e.records),
	}
}

func averageSentiment(records []types.EmployeeRecord) float64 {
	if len(records) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, r := range records {
		sum += r.SentimentScore
	}
	return sum / float64(len(records))
}

func quadrantDistribution(records []types.EmployeeRecord) map[string]int {
	dist := map[string]int{}
	for _, r := range records {
		dist[r.Quadrant]++
	}
	return dist
}

func sentimentByRole(records []types.EmployeeRecord) map[string]float64 {
	totals := map[string]float64{}
	counts := map[string]int{}
	for _, r := range records {
		totals[r.Role] += r.SentimentScore
		counts[r.Role]++
	}
	means := make(map[string]float64, len(totals))
	for role, total := range totals {
		means[role] = total / float64(counts[role])
	}
	return means
}
