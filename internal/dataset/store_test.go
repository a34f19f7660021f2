package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tidinho/dash-leishmaniose/internal/loader"
	"github.com/tidinho/dash-leishmaniose/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func countingLoad(calls *int32) LoadFunc {
	return func(ctx context.Context, path string) (*loader.Table, error) {
		atomic.AddInt32(calls, 1)
		return &loader.Table{
			Format:  loader.FormatCSV,
			Columns: model.RequiredColumns,
			Rows: []model.RawRow{
				{model.ColState: "MA", model.ColMunicipality: "Caxias"},
				{model.ColState: "PI", model.ColMunicipality: "Teresina"},
			},
		}, nil
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	started  []string
	finished []error
}

func (o *recordingObserver) LoadStarted(id, path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, id)
}

func (o *recordingObserver) LoadFinished(id string, snap *Snapshot, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, err)
}

func TestStore_GetMemoizes(t *testing.T) {
	var calls int32
	obs := &recordingObserver{}
	s := NewStore("casos.csv", WithLoadFunc(countingLoad(&calls)), WithObserver(obs))

	var wg sync.WaitGroup
	snaps := make([]*Snapshot, 8)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := s.Get(context.Background())
			assert.NoError(t, err)
			snaps[i] = snap
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, snap := range snaps {
		assert.Same(t, snaps[0], snap)
	}
	assert.Equal(t, 2, snaps[0].Len())
	assert.NotEmpty(t, snaps[0].ID)
	assert.Len(t, obs.started, 1)
	assert.Equal(t, []error{nil}, obs.finished)
}

func TestStore_InvalidateAndReload(t *testing.T) {
	var calls int32
	s := NewStore("casos.csv", WithLoadFunc(countingLoad(&calls)))

	first, err := s.Get(context.Background())
	require.NoError(t, err)

	s.Invalidate()
	assert.Nil(t, s.Current())

	second, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	third, err := s.Reload(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, second.ID, third.ID)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestStore_ReloadFailureKeepsPrevious(t *testing.T) {
	var fail atomic.Bool
	boom := errors.New("disco cheio")
	var calls int32
	ok := countingLoad(&calls)
	s := NewStore("casos.csv", WithLoadFunc(func(ctx context.Context, path string) (*loader.Table, error) {
		if fail.Load() {
			return nil, boom
		}
		return ok(ctx, path)
	}))

	first, err := s.Get(context.Background())
	require.NoError(t, err)

	fail.Store(true)
	_, err = s.Reload(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Same(t, first, s.Current())
}

func TestStore_NoPath(t *testing.T) {
	_, err := NewStore("").Get(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshotPath)
}

func TestStore_MissingColumnsSurfaceOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruim.csv")
	require.NoError(t, os.WriteFile(path, []byte("sigla_uf\nSP\n"), 0o644))

	_, err := NewStore(path).Get(context.Background())
	assert.ErrorIs(t, err, loader.ErrMissingColumns)
}

func TestWatcher_InvalidatesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casos.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	var calls int32
	s := NewStore(path, WithLoadFunc(countingLoad(&calls)))
	_, err := s.Get(context.Background())
	require.NoError(t, err)

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(s, 40*time.Millisecond, nil, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "outro.txt"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("novo"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not invalidate the snapshot")
	}
	assert.Nil(t, s.Current())
	assert.GreaterOrEqual(t, w.Stats().Invalidations, 1)
}

func TestStore_ReportsMissingOptionalColumns(t *testing.T) {
	var calls int32
	s := NewStore("casos.csv", WithLoadFunc(countingLoad(&calls)))
	snap, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{model.ColSanitation}, snap.MissingOptional)

	full := NewStore("casos.parquet", WithLoadFunc(func(ctx context.Context, path string) (*loader.Table, error) {
		cols := append(append([]string{}, model.RequiredColumns...), model.OptionalColumns...)
		return &loader.Table{Format: loader.FormatParquet, Columns: cols, Rows: []model.RawRow{}}, nil
	}))
	snap, err = full.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.MissingOptional)
}
