package core

import (
	"context"
	"sort"

	units "github.com/docker/go-units"

	"github.com/oneconcern/checkpoint/pkg/model"
)

// ComparisonSide reports the shape of one branch's dataset at the compared
// checkpoint
type ComparisonSide struct {
	Branch     string `json:"branch" yaml:"branch"`
	RowCount   int    `json:"row_count" yaml:"row_count"`
	ColCount   int    `json:"col_count" yaml:"col_count"`
	ApproxSize string `json:"approx_size" yaml:"approx_size"`
}

// Comparison reports shape and column-set differences between the same
// checkpoint id on two branches
type Comparison struct {
	CheckpointID   string         `json:"checkpoint_id" yaml:"checkpoint_id"`
	A              ComparisonSide `json:"branch_a" yaml:"branch_a"`
	B              ComparisonSide `json:"branch_b" yaml:"branch_b"`
	ColumnsOnlyInA []string       `json:"columns_only_in_a,omitempty" yaml:"columns_only_in_a,omitempty"`
	ColumnsOnlyInB []string       `json:"columns_only_in_b,omitempty" yaml:"columns_only_in_b,omitempty"`
	CommonColumns  []string       `json:"common_columns,omitempty" yaml:"common_columns,omitempty"`
}

// Compare loads the named checkpoint in both branches and reports their
// shape and column-set differences.
func (s *Store) Compare(ctx context.Context, branchA, branchB, checkpointID string) (Comparison, error) {
	dsA, err := s.Load(ctx, branchA, checkpointID)
	if err != nil {
		return Comparison{}, err
	}
	dsB, err := s.Load(ctx, branchB, checkpointID)
	if err != nil {
		return Comparison{}, err
	}

	colsA := make(map[string]struct{}, dsA.Cols())
	for _, name := range dsA.ColumnNames() {
		colsA[name] = struct{}{}
	}
	colsB := make(map[string]struct{}, dsB.Cols())
	for _, name := range dsB.ColumnNames() {
		colsB[name] = struct{}{}
	}

	comparison := Comparison{
		CheckpointID: checkpointID,
		A:            side(branchA, dsA),
		B:            side(branchB, dsB),
	}
	for name := range colsA {
		if _, ok := colsB[name]; ok {
			comparison.CommonColumns = append(comparison.CommonColumns, name)
		} else {
			comparison.ColumnsOnlyInA = append(comparison.ColumnsOnlyInA, name)
		}
	}
	for name := range colsB {
		if _, ok := colsA[name]; !ok {
			comparison.ColumnsOnlyInB = append(comparison.ColumnsOnlyInB, name)
		}
	}
	sort.Strings(comparison.ColumnsOnlyInA)
	sort.Strings(comparison.ColumnsOnlyInB)
	sort.Strings(comparison.CommonColumns)
	return comparison, nil
}

func side(branchName string, ds *model.Dataset) ComparisonSide {
	return ComparisonSide{
		Branch:     branchName,
		RowCount:   ds.Rows(),
		ColCount:   ds.Cols(),
		ApproxSize: units.HumanSize(float64(ds.ApproxSize())),
	}
}
