package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jonathan/prep-readiness/internal/metrics"
	"github.com/jonathan/prep-readiness/internal/normalize"
	"github.com/jonathan/prep-readiness/internal/schemas"
	"github.com/jonathan/prep-readiness/internal/types"
	"go.uber.org/zap"
)

// Store is the analysis history: one ordered list of records persisted as a single blob.
// Entries are loaded once; after that the in-memory list is authoritative for the session.
type Store struct {
	slot         Slot
	normalizer   *normalize.Normalizer
	logger       *zap.Logger
	verifySchema bool
	now          func() time.Time

	mu        sync.Mutex
	loaded    bool
	entries   []types.Record
	corrupted int
	dirty     bool
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets the logger used for write failures and schema warnings
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSchemaCheck validates the serialized history against the canonical schema before every write
func WithSchemaCheck(enabled bool) StoreOption {
	return func(s *Store) { s.verifySchema = enabled }
}

// WithClock overrides the clock used for updatedAt bumps and fallback timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
		s.normalizer.Now = now
	}
}

// NewStore creates a history store over slot
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot:       slot,
		normalizer: normalize.New(),
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the history slot once and reports how many stored items were unusable.
// Subsequent calls return the cached list.
func (s *Store) Load(ctx context.Context) ([]types.Record, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, 0, err
	}
	return cloneRecords(s.entries), s.corrupted, nil
}

// Reload drops the cached list and reads the slot again
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	return s.ensureLoaded(ctx)
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	blob, err := s.slot.Get(ctx, HistoryKey)
	if err != nil {
		return &ReadError{Key: HistoryKey, Cause: err}
	}
	s.entries, s.corrupted = s.normalizer.Batch(blob)
	s.loaded = true
	metrics.CorruptedRecords.Set(float64(s.corrupted))
	metrics.HistorySize.Set(float64(len(s.entries)))
	if s.corrupted > 0 {
		s.logger.Warn("skipped corrupted history entries", zap.Int("corrupted", s.corrupted))
	}
	return nil
}

// Create prepends rec and saves the list. A *WriteError means the record is kept for the session only.
func (s *Store) Create(ctx context.Context, rec types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.entries = append([]types.Record{rec.Clone()}, s.entries...)
	return s.save(ctx)
}

// Get returns the record with the given id
func (s *Store) Get(ctx context.Context, id string) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return types.Record{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return types.Record{}, &NotFoundError{ID: id}
	}
	return s.entries[i].Clone(), nil
}

// Latest returns the most recently updated record
func (s *Store) Latest(ctx context.Context) (types.Record, error) {
	list, err := s.List(ctx)
	if err != nil {
		return types.Record{}, err
	}
	if len(list) == 0 {
		return types.Record{}, &NotFoundError{}
	}
	return list[0], nil
}

// List returns every record ordered by updatedAt, newest first. Ties keep list order.
func (s *Store) List(ctx context.Context) ([]types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := cloneRecords(s.entries)
	slices.SortStableFunc(out, func(a, b types.Record) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}

// Corrupted returns the number of stored items skipped by the last load
func (s *Store) Corrupted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.corrupted
}

// Dirty reports whether the in-memory list has changes the slot did not accept
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Update applies fn to the record with the given id and saves the list.
// updatedAt is bumped when fn changed the final score or the confidence map and left updatedAt alone.
func (s *Store) Update(ctx context.Context, id string, fn func(*types.Record)) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return types.Record{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return types.Record{}, &NotFoundError{ID: id}
	}

	before := s.entries[i]
	next := before.Clone()
	fn(&next)
	if next.UpdatedAt.Equal(before.UpdatedAt) &&
		(next.FinalScore != before.FinalScore || !maps.Equal(next.SkillConfidenceMap, before.SkillConfidenceMap)) {
		next.UpdatedAt = s.now().UTC()
	}
	next.ID = before.ID
	s.entries[i] = next

	return next.Clone(), s.save(ctx)
}

// Clear removes the history slot and empties the in-memory list
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Delete(ctx, HistoryKey); err != nil {
		return &WriteError{Key: HistoryKey, Cause: err}
	}
	s.entries = []types.Record{}
	s.corrupted = 0
	s.loaded = true
	s.dirty = false
	metrics.HistorySize.Set(0)
	metrics.CorruptedRecords.Set(0)
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(r types.Record) bool { return r.ID == id })
}

// save overwrites the slot with the whole list. Must be called with mu held.
func (s *Store) save(ctx context.Context) error {
	metrics.HistorySize.Set(float64(len(s.entries)))

	blob, err := json.Marshal(s.entries)
	if err != nil {
		return s.writeFailed(&WriteError{Key: HistoryKey, Cause: fmt.Errorf("marshal history: %w", err)})
	}
	if s.verifySchema {
		if err := schemas.ValidateHistory(blob); err != nil {
			s.logger.Warn("history failed schema self-check", zap.Error(err))
		}
	}
	if err := s.slot.Put(ctx, HistoryKey, blob); err != nil {
		return s.writeFailed(&WriteError{Key: HistoryKey, Cause: err})
	}
	s.dirty = false
	return nil
}

func (s *Store) writeFailed(err *WriteError) error {
	s.dirty = true
	metrics.SlotWriteFailures.WithLabelValues(err.Key).Inc()
	s.logger.Warn("history write failed; keeping changes for this session", zap.Error(err))
	return err
}

func cloneRecords(in []types.Record) []types.Record {
	out := make([]types.Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
