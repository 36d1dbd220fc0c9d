package model

import "time"

// CheckpointRecord is the metadata for a single checkpoint in a branch
// history. Records are immutable once appended: the registry only ever hands
// out copies.
type CheckpointRecord struct {
	ID             string                 `json:"id" yaml:"id"`
	Parent         string                 `json:"parent,omitempty" yaml:"parent,omitempty"`
	Timestamp      time.Time              `json:"timestamp" yaml:"timestamp"`
	ContentHash    string                 `json:"content_hash" yaml:"content_hash"`
	RowCount       int                    `json:"row_count" yaml:"row_count"`
	ColCount       int                    `json:"col_count" yaml:"col_count"`
	ConfigSnapshot map[string]interface{} `json:"config_snapshot,omitempty" yaml:"config_snapshot,omitempty"`
	Description    string                 `json:"description,omitempty" yaml:"description,omitempty"`
}

// ForkOrigin identifies the (branch, checkpoint) a branch was forked from
type ForkOrigin struct {
	Branch       string `json:"branch" yaml:"branch"`
	CheckpointID string `json:"checkpoint_id" yaml:"checkpoint_id"`
}

// BranchInfo describes a branch, without its history
type BranchInfo struct {
	Name       string      `json:"name" yaml:"name"`
	CreatedAt  time.Time   `json:"created_at" yaml:"created_at"`
	ForkedFrom *ForkOrigin `json:"forked_from,omitempty" yaml:"forked_from,omitempty"`
}

// BranchManifest is the exported form of one branch: its info plus the
// ordered checkpoint records.
type BranchManifest struct {
	BranchInfo `yaml:",inline"`
	Records    []CheckpointRecord `json:"records" yaml:"records"`
}

// StoreManifest is the exported form of a whole store: every branch plus the
// active branch pointer. Written on export for reproducibility, never read
// back by the store.
type StoreManifest struct {
	ActiveBranch string           `json:"active_branch" yaml:"active_branch"`
	Branches     []BranchManifest `json:"branches" yaml:"branches"`
}

// NowUTC yields the timestamp recorded on commits and branch creations
func NowUTC() time.Time {
	return time.Now().UTC()
}
