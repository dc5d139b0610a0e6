package store

import (
	"path/filepath"
	"testing"

	"github.com/kilupskalvis/unify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store in a temp directory for testing.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Initialize())
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_Initialize(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := New(dbPath)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Initialize())

	// Initialized schema is already at the current version.
	require.NoError(t, st.RunMigrations())

	batches, err := st.ListBatches()
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestStore_SaveAndGetBatch(t *testing.T) {
	st := newTestStore(t)

	batch := &models.Batch{
		Name:    "configs",
		Root:    "/srv/repos",
		Pattern: "app.yaml",
		Policy:  "left",
	}
	require.NoError(t, st.SaveBatch(batch))

	got, err := st.GetBatch("configs")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "configs", got.Name)
	assert.Equal(t, "/srv/repos", got.Root)
	assert.Equal(t, "app.yaml", got.Pattern)
	assert.Equal(t, "left", got.Policy)
	assert.False(t, got.CreatedAt.IsZero())

	// Duplicate name is rejected
	assert.Error(t, st.SaveBatch(batch))

	// Missing batch returns nil, nil
	got, err = st.GetBatch("nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ListAndDeleteBatches(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.SaveBatch(&models.Batch{Name: "b", Root: "/b", Pattern: "*", Policy: "union"}))
	require.NoError(t, st.SaveBatch(&models.Batch{Name: "a", Root: "/a", Pattern: "*", Policy: "union"}))

	batches, err := st.ListBatches()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "a", batches[0].Name)
	assert.Equal(t, "b", batches[1].Name)

	require.NoError(t, st.DeleteBatch("a"))
	batches, err = st.ListBatches()
	require.NoError(t, err)
	assert.Len(t, batches, 1)

	assert.Error(t, st.DeleteBatch("a"))
}

func TestStore_InputHistory(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.AddInput("pattern", "config.yaml"))
	require.NoError(t, st.AddInput("pattern", "*.env"))
	require.NoError(t, st.AddInput("root", "/srv"))

	values, err := st.RecentInputs("pattern", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.env", "config.yaml"}, values)

	// Reusing a value moves it to the front instead of duplicating.
	require.NoError(t, st.AddInput("pattern", "config.yaml"))
	values, err = st.RecentInputs("pattern", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"config.yaml", "*.env"}, values)

	values, err = st.RecentInputs("pattern", 1)
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestStore_RunLog(t *testing.T) {
	st := newTestStore(t)

	result := &models.MergeCompletionResult{
		Success:              true,
		InitialGroupCount:    3,
		TotalMergeOperations: 2,
		TotalFilesMerged:     4,
		FinalLineCount:       10,
		Operations: []models.MergeOperationSummary{
			{OperationNumber: 1, PathLeft: "a", PathRight: "b", SimilarityScore: 0.5, FilesAffected: 2, MergedLineCount: 10},
		},
	}

	id, err := st.RecordRun("/srv", "config.yaml", result)
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := st.RecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "config.yaml", runs[0].Pattern)
	assert.Equal(t, "/srv", runs[0].Root)
	assert.True(t, runs[0].Result.Success)
	assert.Equal(t, 2, runs[0].Result.TotalMergeOperations)
	require.Len(t, runs[0].Result.Operations, 1)
	assert.Equal(t, "a", runs[0].Result.Operations[0].PathLeft)
}
