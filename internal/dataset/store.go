package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/loader"
	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// ErrNoSnapshotPath is returned when the store has no file to load.
var ErrNoSnapshotPath = errors.New("snapshot path not configured")

// Snapshot normalized dataset, read-only once published.
type Snapshot struct {
	ID       string
	Path     string
	Format   loader.Format
	LoadedAt time.Time
	Duration time.Duration
	Records  []model.CaseRecord

	// MissingOptional optional columns the file does not carry.
	MissingOptional []string
}

// Len number of case records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// LoadFunc reads and normalizes a snapshot file.
type LoadFunc func(ctx context.Context, path string) (*loader.Table, error)

// LoadObserver is notified around every load attempt.
type LoadObserver interface {
	LoadStarted(id, path string)
	LoadFinished(id string, snap *Snapshot, err error)
}

// Store keeps one snapshot for the process lifetime.
// The snapshot is loaded on first use and replaced only after Invalidate or Reload.
type Store struct {
	path     string
	load     LoadFunc
	logger   *zap.Logger
	observer LoadObserver

	mu      sync.RWMutex
	current *Snapshot

	// loadMu serializes loads so concurrent Get calls read the file once.
	loadMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLoadFunc replaces the file loader.
func WithLoadFunc(fn LoadFunc) Option {
	return func(s *Store) { s.load = fn }
}

// WithObserver registers a load observer.
func WithObserver(o LoadObserver) Option {
	return func(s *Store) { s.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store for the snapshot at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		load:   loader.Load,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Current returns the loaded snapshot without triggering a load.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Get returns the memoized snapshot, loading it on first use.
func (s *Store) Get(ctx context.Context) (*Snapshot, error) {
	if snap := s.Current(); snap != nil {
		return snap, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// another caller may have finished loading while we waited
	if snap := s.Current(); snap != nil {
		return snap, nil
	}
	return s.loadLocked(ctx)
}

// Reload reads the file again and publishes the new snapshot.
// On failure the previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.loadLocked(ctx)
}

// Invalidate drops the memoized snapshot; the next Get reloads.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.logger.Info("snapshot invalidated", zap.String("id", s.current.ID), zap.String("path", s.path))
	}
	s.current = nil
}

func (s *Store) loadLocked(ctx context.Context) (*Snapshot, error) {
	if s.path == "" {
		return nil, ErrNoSnapshotPath
	}

	id := uuid.New().String()
	if s.observer != nil {
		s.observer.LoadStarted(id, s.path)
	}

	start := time.Now()
	table, err := s.load(ctx, s.path)
	if err != nil {
		err = fmt.Errorf("load snapshot %s: %w", s.path, err)
		s.logger.Error("snapshot load failed", zap.String("id", id), zap.Error(err))
		if s.observer != nil {
			s.observer.LoadFinished(id, nil, err)
		}
		return nil, err
	}

	snap := &Snapshot{
		ID:       id,
		Path:     s.path,
		Format:   table.Format,
		LoadedAt: start,
		Records:  table.Records(),
	}
	snap.Duration = time.Since(start)
	for _, col := range model.OptionalColumns {
		if !table.HasColumn(col) {
			snap.MissingOptional = append(snap.MissingOptional, col)
			s.logger.Warn("optional column missing, values will be null",
				zap.String("id", id), zap.String("column", col))
		}
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.Info("snapshot loaded",
		zap.String("id", id),
		zap.String("path", s.path),
		zap.String("format", string(snap.Format)),
		zap.Int("records", snap.Len()),
		zap.Duration("duration", snap.Duration),
	)
	if s.observer != nil {
		s.observer.LoadFinished(id, snap, nil)
	}
	return snap, nil
}
