package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-insights-go/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logger.New())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReplaceAndFetchAll(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	header := []string{"employee_id", "employee_name", "employee_role", "positive_percentage"}
	rows := [][]string{
		{"1", "Ada", "Engineer", "82.5"},
		{"2", "Bo", "Sales", "41"},
	}
	require.NoError(t, s.Replace(ctx, header, rows))

	got, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ada", got[0]["employee_name"])
	assert.Equal(t, "82.5", got[0]["positive_percentage"])
	assert.Equal(t, "Sales", got[1]["employee_role"])
}

func TestReplaceDropsPriorTable(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, []string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}}))
	require.NoError(t, s.Replace(ctx, []string{"c"}, [][]string{{"only"}}))

	got, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0]["c"])
	assert.NotContains(t, got[0], "a")
}

func TestFetchAllOmitsNullColumns(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	// short row: trailing columns are NULL and must be absent from the map
	require.NoError(t, s.Replace(ctx, []string{"employee_name", "quadrant"}, [][]string{{"Ada"}}))

	got, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0]["employee_name"])
	assert.NotContains(t, got[0], "quadrant")
}

func TestFetchAllMissingTable(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.FetchAll(context.Background())
	assert.Error(t, err)
}

func TestReplaceEmptyHeader(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	assert.Error(t, s.Replace(context.Background(), nil, nil))
}
