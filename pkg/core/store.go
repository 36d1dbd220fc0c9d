// Package core implements the versioned snapshot store: a branching,
// append-only history of dataset checkpoints backed by a bounded in-memory
// cache spilling to durable storage.
//
// One Store instance exclusively owns its registry, cache and staging
// namespace. All operations are synchronous and the store is not safe for
// concurrent use; expose it behind a mutex if it must serve several
// goroutines.
package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/checkpoint/pkg/cache"
	"github.com/oneconcern/checkpoint/pkg/core/status"
	"github.com/oneconcern/checkpoint/pkg/model"
	"github.com/oneconcern/checkpoint/pkg/snapshot"
	"github.com/oneconcern/checkpoint/pkg/storage"
	"github.com/oneconcern/checkpoint/pkg/storage/localfs"
)

// DefaultBranchName of the branch seeded at construction
const DefaultBranchName = "main"

// Store is the facade over the branch registry, history log, LRU cache and
// snapshot codec. Collaborators only ever hand it dataset values to commit
// and receive copies back: nothing they hold aliases the store's internals.
type Store struct {
	registry      *registry
	cache         *cache.Cache
	staging       storage.Store
	defaultBranch string
	active        string
	cacheSize     int
	l             *zap.Logger
}

// StoreOption to build a store
type StoreOption func(*Store)

// CacheSize fixes the number of dataset values held in memory (default 5)
func CacheSize(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.cacheSize = n
		}
	}
}

// Staging sets the durable storage namespace spilled snapshots live in.
// The namespace must be exclusively owned by this store instance.
func Staging(store storage.Store) StoreOption {
	return func(s *Store) {
		if store != nil {
			s.staging = store
		}
	}
}

// DefaultBranch overrides the name of the branch seeded at construction
func DefaultBranch(name string) StoreOption {
	return func(s *Store) {
		if name != "" {
			s.defaultBranch = name
		}
	}
}

// Logger sets a zap logger on this store (default: no logging)
func Logger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.l = l
		}
	}
}

// New builds a snapshot store. Without a Staging option, spills go to a
// fresh, uniquely named directory under the system temp directory.
//
// The caller owns the store's lifetime: call Purge (or Reset) when the
// session ends, there is no implicit cleanup hook.
func New(opts ...StoreOption) (*Store, error) {
	s := &Store{
		defaultBranch: DefaultBranchName,
		cacheSize:     cache.DefaultCapacity,
		l:             zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	if s.staging == nil {
		s.staging = localfs.New(afero.NewBasePathFs(afero.NewOsFs(),
			filepath.Join(os.TempDir(), model.StagingName())))
	}

	memory, err := cache.New(s.spill,
		cache.Capacity(s.cacheSize),
		cache.Logger(s.l),
	)
	if err != nil {
		return nil, err
	}
	s.cache = memory
	s.registry = newRegistry(s.defaultBranch)
	s.active = s.defaultBranch
	return s, nil
}

// spill is the cache eviction path: encode then write the durable record
func (s *Store) spill(ctx context.Context, key cache.StateKey, ds *model.Dataset) error {
	data, err := snapshot.Encode(ds)
	if err != nil {
		return status.ErrSerializationFailure.Wrap(err)
	}
	path := model.SpillPath(key.Branch, key.CheckpointID)
	if err := s.staging.Put(ctx, path, bytes.NewReader(data)); err != nil {
		return status.ErrSerializationFailure.Wrap(err)
	}
	return nil
}

// Commit appends a checkpoint to the active branch and admits the dataset
// into the cache, possibly spilling an older entry.
//
// Re-using a checkpoint id already present in the branch history is allowed:
// ids are labels, not unique keys, and lookups resolve to the terminal
// occurrence.
func (s *Store) Commit(ctx context.Context, checkpointID string, ds *model.Dataset, config map[string]interface{}, description string) (model.CheckpointRecord, error) {
	if err := ds.Validate(); err != nil {
		return model.CheckpointRecord{}, status.ErrSerializationFailure.Wrap(err)
	}
	data, err := snapshot.Encode(ds)
	if err != nil {
		return model.CheckpointRecord{}, status.ErrSerializationFailure.Wrap(err)
	}

	active, err := s.registry.get(s.active)
	if err != nil {
		return model.CheckpointRecord{}, err
	}
	record := model.CheckpointRecord{
		ID:             checkpointID,
		Timestamp:      model.NowUTC(),
		ContentHash:    snapshot.HashBytes(data).String(),
		RowCount:       ds.Rows(),
		ColCount:       ds.Cols(),
		ConfigSnapshot: config,
		Description:    description,
	}
	if term, ok := active.terminal(); ok {
		record.Parent = term.ID
	}
	if err := active.append(record); err != nil {
		return model.CheckpointRecord{}, err
	}
	key := cache.StateKey{Branch: s.active, CheckpointID: checkpointID}
	if err := s.cache.Put(ctx, key, ds); err != nil {
		return model.CheckpointRecord{}, err
	}

	s.l.Info("committed checkpoint",
		zap.String("branch", s.active),
		zap.String("checkpoint", checkpointID),
		zap.Int("rows", record.RowCount),
		zap.Int("cols", record.ColCount),
		zap.String("content_hash", record.ContentHash),
	)
	return record, nil
}

// Load returns a copy of the dataset at (branch, checkpoint id), consulting
// the cache first and durable storage on a miss. A reloaded dataset is
// re-admitted into the cache, which may itself trigger an eviction.
func (s *Store) Load(ctx context.Context, branchName, checkpointID string) (*model.Dataset, error) {
	key := cache.StateKey{Branch: branchName, CheckpointID: checkpointID}
	if ds, ok := s.cache.Get(key); ok {
		return ds, nil
	}

	path := model.SpillPath(branchName, checkpointID)
	rdr, err := s.staging.Get(ctx, path)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, status.ErrStateNotFound
		}
		return nil, err
	}
	defer func() {
		_ = rdr.Close()
	}()
	var buf bytes.Buffer
	if _, err := storage.PipeIO(&buf, rdr); err != nil {
		return nil, err
	}
	ds, err := snapshot.Decode(buf.Bytes())
	if err != nil {
		return nil, status.ErrCorruptSnapshot.Wrap(err)
	}
	if err := s.cache.Put(ctx, key, ds); err != nil {
		return nil, err
	}
	s.l.Debug("reloaded state from durable storage",
		zap.String("branch", branchName),
		zap.String("checkpoint", checkpointID),
	)
	return ds, nil
}

// Current returns a copy of the dataset at the active branch's terminal
// checkpoint, or nil if the branch has no history yet.
func (s *Store) Current(ctx context.Context) (*model.Dataset, error) {
	id, ok := s.CurrentID()
	if !ok {
		return nil, nil
	}
	return s.Load(ctx, s.active, id)
}

// CurrentID yields the terminal checkpoint id of the active branch
func (s *Store) CurrentID() (string, bool) {
	active, err := s.registry.get(s.active)
	if err != nil {
		return "", false
	}
	term, ok := active.terminal()
	if !ok {
		return "", false
	}
	return term.ID, true
}

// ActiveBranch is the name of the branch commits currently append to
func (s *Store) ActiveBranch() string {
	return s.active
}

// History yields an ordered copy of a branch's checkpoint records
func (s *Store) History(branchName string) ([]model.CheckpointRecord, error) {
	b, err := s.registry.get(branchName)
	if err != nil {
		return nil, err
	}
	return b.history(), nil
}

// Purge synchronously destroys every in-memory and durable copy of held
// datasets. Irreversible; the history metadata survives but no state can be
// loaded afterwards. Used for compliance-driven erasure and teardown.
func (s *Store) Purge(ctx context.Context) error {
	s.cache.Purge()
	if err := s.staging.Clear(ctx); err != nil {
		return err
	}
	// compliance audit trail: no user data in this line
	s.l.Info("session data purged",
		zap.Time("purged_at", model.NowUTC()),
		zap.Stringer("staging", s.staging),
	)
	return nil
}

// Reset purges all held data and re-initializes the registry to a single
// empty default branch, as if the store had just been constructed.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.Purge(ctx); err != nil {
		return err
	}
	s.registry = newRegistry(s.defaultBranch)
	s.active = s.defaultBranch
	return nil
}
