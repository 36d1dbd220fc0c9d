package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/checkpoint/pkg/model"
)

func setupStaging(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{
		model.SpillPath("main", "df_raw"),
		model.SpillPath("exp", "df_clean"),
		"not-a-spill-record.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"version":1,"columns":[]}`), 0600))
	}
	stagingPath = dir
	t.Cleanup(func() { stagingPath = "" })
	return dir
}

func TestStagingStore(t *testing.T) {
	stagingPath = ""
	storeConfig.StagingPath = ""
	_, err := stagingStore()
	require.Error(t, err)

	setupStaging(t)
	store, err := stagingStore()
	require.NoError(t, err)
	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Len(t, keys, 3)
}

func TestPurgeCommand(t *testing.T) {
	dir := setupStaging(t)

	purgeCmd.Run(purgeCmd, nil)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInspectCommand(t *testing.T) {
	setupStaging(t)

	// must not fatal on a mixed staging directory
	inspectCmd.Run(inspectCmd, nil)
}
