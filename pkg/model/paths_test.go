package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpillPath(t *testing.T) {
	for _, toPin := range []struct {
		branch, id, expected string
	}{
		{"main", "df_raw", "main__df_raw.snapshot.json"},
		{"experiment-1", "df_clean", "experiment-1__df_clean.snapshot.json"},
		{"with/slash", "id", "with%2Fslash__id.snapshot.json"},
	} {
		testcase := toPin
		assert.Equal(t, testcase.expected, SpillPath(testcase.branch, testcase.id))

		branch, id, ok := ParseSpillPath(testcase.expected)
		require.True(t, ok)
		assert.Equal(t, testcase.branch, branch)
		assert.Equal(t, testcase.id, id)
	}
}

func TestSpillPathPrefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(SpillPath("featx", "s1"), SpillPathPrefix("featx")))
	assert.False(t, strings.HasPrefix(SpillPath("feat", "s1"), SpillPathPrefix("featx")))
}

func TestParseSpillPathRejects(t *testing.T) {
	for _, key := range []string{
		"state_store.yaml",
		"noseparator.snapshot.json",
		"main__df_raw.parquet",
	} {
		_, _, ok := ParseSpillPath(key)
		assert.False(t, ok, key)
	}
}

func TestStagingName(t *testing.T) {
	a, b := StagingName(), StagingName()
	assert.True(t, strings.HasPrefix(a, "checkpoint-"))
	assert.NotEqual(t, a, b)
}
