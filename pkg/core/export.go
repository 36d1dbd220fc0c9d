package core

import (
	"bytes"
	"context"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/oneconcern/checkpoint/pkg/core/status"
	"github.com/oneconcern/checkpoint/pkg/errors"
	"github.com/oneconcern/checkpoint/pkg/model"
	"github.com/oneconcern/checkpoint/pkg/snapshot"
	"github.com/oneconcern/checkpoint/pkg/storage"
)

// Export writes a reproducibility bundle to target:
//
//   - the origin checkpoint's dataset (first record of the default branch),
//     in the same durable format used for spilling, when it exists;
//   - a manifest of every branch's creation time, fork origin and ordered
//     checkpoint records, plus the active branch pointer;
//   - the active branch's terminal config snapshot, when it exists.
//
// The bundle documents a session; it is never read back into a store.
func (s *Store) Export(ctx context.Context, target storage.Store) error {
	if target == nil {
		return errors.New("export requires a target store")
	}

	if err := s.exportOrigin(ctx, target); err != nil {
		return err
	}

	manifest := s.registry.manifest(s.active)
	doc, err := yaml.Marshal(manifest)
	if err != nil {
		return status.ErrSerializationFailure.Wrap(err)
	}
	if err := target.Put(ctx, model.ExportManifestPath(), bytes.NewReader(doc)); err != nil {
		return err
	}

	if err := s.exportTerminalConfig(ctx, target); err != nil {
		return err
	}
	s.l.Info("exported store",
		zap.Stringer("target", target),
		zap.Int("branches", len(manifest.Branches)),
	)
	return nil
}

func (s *Store) exportOrigin(ctx context.Context, target storage.Store) error {
	b, err := s.registry.get(s.defaultBranch)
	if err != nil {
		return err
	}
	records := b.history()
	if len(records) == 0 {
		// nothing committed yet on the default branch
		return nil
	}
	origin := records[0]
	ds, err := s.Load(ctx, s.defaultBranch, origin.ID)
	if err != nil {
		return err
	}
	data, err := snapshot.Encode(ds)
	if err != nil {
		return status.ErrSerializationFailure.Wrap(err)
	}
	return target.Put(ctx, model.ExportDatasetPath(origin.ID), bytes.NewReader(data))
}

func (s *Store) exportTerminalConfig(ctx context.Context, target storage.Store) error {
	active, err := s.registry.get(s.active)
	if err != nil {
		return err
	}
	term, ok := active.terminal()
	if !ok {
		return nil
	}
	doc, err := yaml.Marshal(term.ConfigSnapshot)
	if err != nil {
		return status.ErrSerializationFailure.Wrap(err)
	}
	return target.Put(ctx, model.ExportConfigPath(), bytes.NewReader(doc))
}
