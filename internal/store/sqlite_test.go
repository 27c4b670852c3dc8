package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medspasync/reconcile/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func batchResult(total, successful, autoAccept int) model.BatchResult {
	return model.BatchResult{
		Summary: model.BatchSummary{
			Total:      total,
			AutoAccept: autoAccept,
		},
		ProcessingInfo: model.BatchProcessingInfo{
			TotalPairs:            total,
			SuccessfulPredictions: successful,
		},
	}
}

func TestCreateAndGetRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateRun(ctx, "api", 0.95, batchResult(10, 10, 7))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "api", created.Source)
	assert.Equal(t, model.RunStatusComplete, created.Status)
	assert.Equal(t, 10, created.Pairs)
	assert.Equal(t, 0, created.Failed)
	assert.Equal(t, 0.95, created.Threshold)

	got, err := st.GetRun(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Status, got.Status)
	assert.Equal(t, 7, got.Summary.AutoAccept, "summary round-trips through JSON")
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)
}

func TestCreateRun_StatusDerivation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	partial, err := st.CreateRun(ctx, "api", 0.95, batchResult(10, 8, 5))
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusPartial, partial.Status)
	assert.Equal(t, 2, partial.Failed)

	failed, err := st.CreateRun(ctx, "api", 0.95, batchResult(3, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, failed.Status)

	empty, err := st.CreateRun(ctx, "api", 0.95, batchResult(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, empty.Status, "empty batch is trivially complete")
}

func TestGetRun_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRuns_Filters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.CreateRun(ctx, "api", 0.95, batchResult(10, 10, 5))
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, "pairs.json", 0.90, batchResult(4, 2, 1))
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, "api", 0.95, batchResult(2, 0, 0))
	require.NoError(t, err)

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	apiOnly, err := st.ListRuns(ctx, RunFilter{Source: "api"})
	require.NoError(t, err)
	assert.Len(t, apiOnly, 2)

	partials, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusPartial})
	require.NoError(t, err)
	require.Len(t, partials, 1)
	assert.Equal(t, "pairs.json", partials[0].Source)

	limited, err := st.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	future, err := st.ListRuns(ctx, RunFilter{CreatedAfter: time.Now().UTC().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestListRuns_Empty(t *testing.T) {
	st := newTestStore(t)

	runs, err := st.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, model.RunStatusComplete, model.StatusFor(5, 0))
	assert.Equal(t, model.RunStatusPartial, model.StatusFor(5, 2))
	assert.Equal(t, model.RunStatusFailed, model.StatusFor(5, 5))
	assert.Equal(t, model.RunStatusComplete, model.StatusFor(0, 0))
}
