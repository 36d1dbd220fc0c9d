package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/checkpoint/pkg/core/status"
	"github.com/oneconcern/checkpoint/pkg/model"
)

// Fork creates a new branch off a checkpoint of the currently active branch,
// switches to it, and commits the forked dataset as the new branch's first
// checkpoint under the same id. Rolling back to an earlier checkpoint is the
// same operation: fork from it.
func (s *Store) Fork(ctx context.Context, newBranchName, fromCheckpointID string) error {
	source := s.active
	ds, err := s.Load(ctx, source, fromCheckpointID)
	if err != nil {
		return err
	}
	var config map[string]interface{}
	if b, e := s.registry.get(source); e == nil {
		if record, ok := b.find(fromCheckpointID); ok {
			config = record.ConfigSnapshot
		}
	}

	err = s.registry.create(model.BranchInfo{
		Name:      newBranchName,
		CreatedAt: model.NowUTC(),
		ForkedFrom: &model.ForkOrigin{
			Branch:       source,
			CheckpointID: fromCheckpointID,
		},
	})
	if err != nil {
		return err
	}

	s.active = newBranchName
	_, err = s.Commit(ctx, fromCheckpointID, ds, config,
		fmt.Sprintf("Forked from %s::%s", source, fromCheckpointID))
	if err != nil {
		return err
	}
	s.l.Info("forked branch",
		zap.String("branch", newBranchName),
		zap.String("source_branch", source),
		zap.String("source_checkpoint", fromCheckpointID),
	)
	return nil
}

// Switch makes branchName the active branch and returns a copy of its
// terminal dataset (nil when the branch has no history).
func (s *Store) Switch(ctx context.Context, branchName string) (*model.Dataset, error) {
	if _, err := s.registry.get(branchName); err != nil {
		return nil, err
	}
	s.active = branchName
	return s.Current(ctx)
}

// DeleteBranch removes a branch, its cached entries and its durable spill
// records. The default branch and the active branch are protected.
func (s *Store) DeleteBranch(ctx context.Context, branchName string) error {
	if branchName == s.defaultBranch {
		return status.ErrDefaultBranch
	}
	if branchName == s.active {
		return status.ErrActiveBranch
	}
	b, err := s.registry.get(branchName)
	if err != nil {
		return err
	}

	s.cache.DropBranch(branchName)
	for _, record := range b.history() {
		if err := s.staging.Delete(ctx, model.SpillPath(branchName, record.ID)); err != nil {
			return err
		}
	}
	s.registry.delete(branchName)
	s.l.Info("deleted branch", zap.String("branch", branchName))
	return nil
}

// Branches yields the registered branch names in lexical order
func (s *Store) Branches() []string {
	return s.registry.names()
}

// BranchInfo yields a branch's creation metadata
func (s *Store) BranchInfo(branchName string) (model.BranchInfo, error) {
	b, err := s.registry.get(branchName)
	if err != nil {
		return model.BranchInfo{}, err
	}
	return b.info, nil
}

// BranchSummary reports aggregate figures about one branch
type BranchSummary struct {
	Branch             string    `json:"branch" yaml:"branch"`
	Checkpoints        int       `json:"checkpoints" yaml:"checkpoints"`
	TerminalCheckpoint string    `json:"terminal_checkpoint,omitempty" yaml:"terminal_checkpoint,omitempty"`
	RowCount           int       `json:"row_count" yaml:"row_count"`
	ColCount           int       `json:"col_count" yaml:"col_count"`
	LastModified       time.Time `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// Summary yields aggregate figures about one branch
func (s *Store) Summary(branchName string) (BranchSummary, error) {
	b, err := s.registry.get(branchName)
	if err != nil {
		return BranchSummary{}, err
	}
	summary := BranchSummary{
		Branch:      branchName,
		Checkpoints: len(b.records),
	}
	if term, ok := b.terminal(); ok {
		summary.TerminalCheckpoint = term.ID
		summary.RowCount = term.RowCount
		summary.ColCount = term.ColCount
		summary.LastModified = term.Timestamp
	}
	return summary, nil
}
