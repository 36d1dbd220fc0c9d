package core

import (
	"context"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/oneconcern/checkpoint/pkg/model"
	"github.com/oneconcern/checkpoint/pkg/snapshot"
	"github.com/oneconcern/checkpoint/pkg/storage"
	"github.com/oneconcern/checkpoint/pkg/storage/localfs"
)

func readKey(t *testing.T, store storage.Store, key string) []byte {
	t.Helper()
	rdr, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	defer rdr.Close()
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	return b
}

func TestStoreExport(t *testing.T) {
	ts := newTestStore(t)
	ctx := context.Background()

	_, err := ts.Commit(ctx, "df_raw", rows(6, "id", "raw"), map[string]interface{}{"sep": ","}, "ingested")
	require.NoError(t, err)
	_, err = ts.Commit(ctx, "df_clean", rows(5, "id", "clean"), map[string]interface{}{"impute": "median"}, "cleaned")
	require.NoError(t, err)
	require.NoError(t, ts.Fork(ctx, "exp", "df_raw"))

	target := localfs.New(afero.NewMemMapFs())
	require.NoError(t, ts.Export(ctx, target))

	// artifact 1: the origin checkpoint's dataset, in spill format
	payload := readKey(t, target, model.ExportDatasetPath("df_raw"))
	ds, err := snapshot.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Rows())
	assert.Equal(t, []string{"id", "raw"}, ds.ColumnNames())

	// artifact 2: the full store manifest
	var manifest model.StoreManifest
	require.NoError(t, yaml.Unmarshal(readKey(t, target, model.ExportManifestPath()), &manifest))
	assert.Equal(t, "exp", manifest.ActiveBranch)
	require.Len(t, manifest.Branches, 2)
	assert.Equal(t, "exp", manifest.Branches[0].Name)
	require.NotNil(t, manifest.Branches[0].ForkedFrom)
	assert.Equal(t, "main", manifest.Branches[0].ForkedFrom.Branch)
	assert.Equal(t, "main", manifest.Branches[1].Name)
	require.Len(t, manifest.Branches[1].Records, 2)
	assert.Equal(t, "df_raw", manifest.Branches[1].Records[0].ID)
	assert.Equal(t, "df_clean", manifest.Branches[1].Records[1].ID)
	assert.Equal(t, "df_raw", manifest.Branches[1].Records[1].Parent)
	assert.NotEmpty(t, manifest.Branches[1].Records[0].ContentHash)

	// artifact 3: the active branch's terminal configuration
	var config map[string]interface{}
	require.NoError(t, yaml.Unmarshal(readKey(t, target, model.ExportConfigPath()), &config))
	assert.Equal(t, ",", config["sep"])
}

func TestStoreExportEmpty(t *testing.T) {
	ts := newTestStore(t)
	ctx := context.Background()

	target := localfs.New(afero.NewMemMapFs())
	require.NoError(t, ts.Export(ctx, target))

	keys, err := target.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{model.ExportManifestPath()}, keys)

	require.Error(t, ts.Export(ctx, nil))
}
