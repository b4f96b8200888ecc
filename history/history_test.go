package history

import (
	"testing"
	"time"

	"github.com/amp-labs/amp-sort/bench"
	"github.com/amp-labs/amp-sort/dataset"
	"github.com/amp-labs/amp-sort/sorting"
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.TempDir(), "test-host")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	// Ids one second apart, so list order is deterministic.
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	next := 0

	store.newID = func() ksuid.KSUID {
		id, err := ksuid.NewRandomWithTime(base.Add(time.Duration(next) * time.Second))
		require.NoError(t, err)

		next++

		return id
	}

	return store
}

func result(alg sorting.Algorithm, count int) bench.Result {
	return bench.Result{
		ID:        uuid.New(),
		Algorithm: alg,
		Dataset:   dataset.KindWords,
		Count:     count,
		Wall:      time.Second,
		Status:    bench.StatusOK,
	}
}

func TestStore_SaveGet(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	saved, err := store.Save([]bench.Result{result(sorting.QuickSort, 10)})
	require.NoError(t, err)

	assert.Equal(t, "test-host", saved.Host)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), saved.Created.UTC())

	got, err := store.Get(saved.ID)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	require.Len(t, got.Results, 1)
	assert.Equal(t, sorting.QuickSort, got.Results[0].Algorithm)
	assert.Equal(t, dataset.KindWords, got.Results[0].Dataset)
	assert.Equal(t, time.Second, got.Results[0].Wall)
	assert.Equal(t, saved.Results[0].ID, got.Results[0].ID)
}

func TestStore_List(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	var ids []ksuid.KSUID

	for i := range 3 {
		run, err := store.Save([]bench.Result{result(sorting.MergeSort, i+1)})
		require.NoError(t, err)

		ids = append(ids, run.ID)
	}

	runs, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, ids[0], runs[2].ID)

	runs, err = store.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Results[0].Count)
}

func TestStore_ListSameSecond(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := Open(dir, "")
	require.NoError(t, err)

	var ids []ksuid.KSUID

	for i := range 20 {
		run, err := store.Save([]bench.Result{result(sorting.QuickSort, i)})
		require.NoError(t, err)

		ids = append(ids, run.ID)
	}

	require.NoError(t, store.Close())

	store, err = Open(dir, "")
	require.NoError(t, err)

	defer func() { require.NoError(t, store.Close()) }()

	run, err := store.Save(nil)
	require.NoError(t, err)

	ids = append(ids, run.ID)

	runs, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, runs, len(ids))

	for i, r := range runs {
		assert.Equal(t, ids[len(ids)-1-i], r.ID, "position %d", i)
	}
}

func TestStore_SaveSkippedWithoutDataset(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	saved, err := store.Save([]bench.Result{{
		ID:        uuid.New(),
		Algorithm: sorting.BubbleSort,
		Count:     10,
		Status:    bench.StatusSkipped,
		Error:     "no dataset",
	}})
	require.NoError(t, err)

	got, err := store.Get(saved.ID)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, dataset.Kind(0), got.Results[0].Dataset)
	assert.Equal(t, bench.StatusSkipped, got.Results[0].Status)
}

func TestStore_Empty(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	runs, err := store.List(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = store.Get(ksuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	first, err := store.Save(nil)
	require.NoError(t, err)

	second, err := store.Save(nil)
	require.NoError(t, err)

	require.NoError(t, store.Delete(first.ID))
	require.ErrorIs(t, store.Delete(first.ID), ErrNotFound)

	runs, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, second.ID, runs[0].ID)
}

func TestStore_Reopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := Open(dir, "")
	require.NoError(t, err)

	saved, err := store.Save([]bench.Result{result(sorting.ShellSort, 7)})
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.List(0)
	require.ErrorIs(t, err, ErrClosed)

	store, err = Open(dir, "")
	require.NoError(t, err)

	defer func() { require.NoError(t, store.Close()) }()

	got, err := store.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Results[0].Count)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id := ksuid.New()

	got, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("nope")
	require.ErrorIs(t, err, ErrInvalidID)
}
