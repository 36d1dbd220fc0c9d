package core

import (
	"sort"

	"github.com/oneconcern/checkpoint/pkg/core/status"
	"github.com/oneconcern/checkpoint/pkg/model"
)

// branch pairs a branch's immutable info with its append-only history.
// Records are value types: nothing handed out by the registry aliases the
// slice, so a record can never be mutated in place from outside.
type branch struct {
	info    model.BranchInfo
	records []model.CheckpointRecord
}

func (b *branch) terminal() (model.CheckpointRecord, bool) {
	if len(b.records) == 0 {
		return model.CheckpointRecord{}, false
	}
	return b.records[len(b.records)-1], true
}

// find yields the terminal occurrence of a checkpoint id. Duplicate ids are
// allowed in a history, so the scan runs newest first.
func (b *branch) find(checkpointID string) (model.CheckpointRecord, bool) {
	for i := len(b.records) - 1; i >= 0; i-- {
		if b.records[i].ID == checkpointID {
			return b.records[i], true
		}
	}
	return model.CheckpointRecord{}, false
}

func (b *branch) append(record model.CheckpointRecord) error {
	parent := ""
	if term, ok := b.terminal(); ok {
		parent = term.ID
	}
	if record.Parent != parent {
		return status.ErrHistoryLinkage
	}
	b.records = append(b.records, record)
	return nil
}

func (b *branch) history() []model.CheckpointRecord {
	out := make([]model.CheckpointRecord, len(b.records))
	copy(out, b.records)
	return out
}

// registry is the named set of branch histories owned by one store
type registry struct {
	branches map[string]*branch
}

func newRegistry(defaultBranch string) *registry {
	r := &registry{branches: make(map[string]*branch)}
	_ = r.create(model.BranchInfo{Name: defaultBranch, CreatedAt: model.NowUTC()})
	return r
}

func (r *registry) get(name string) (*branch, error) {
	b, ok := r.branches[name]
	if !ok {
		return nil, status.ErrBranchNotFound
	}
	return b, nil
}

func (r *registry) create(info model.BranchInfo) error {
	if _, ok := r.branches[info.Name]; ok {
		return status.ErrBranchExists
	}
	r.branches[info.Name] = &branch{info: info}
	return nil
}

func (r *registry) delete(name string) {
	delete(r.branches, name)
}

func (r *registry) names() []string {
	names := make([]string, 0, len(r.branches))
	for name := range r.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry) manifest(activeBranch string) model.StoreManifest {
	manifest := model.StoreManifest{
		ActiveBranch: activeBranch,
		Branches:     make([]model.BranchManifest, 0, len(r.branches)),
	}
	for _, name := range r.names() {
		b := r.branches[name]
		manifest.Branches = append(manifest.Branches, model.BranchManifest{
			BranchInfo: b.info,
			Records:    b.history(),
		})
	}
	return manifest
}
