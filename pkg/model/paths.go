package model

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/segmentio/ksuid"
)

const (
	spillSuffix   = ".snapshot.json"
	spillJoin     = "__"
	stagingPrefix = "checkpoint-"

	// manifest files written by export
	manifestFile = "state_store.yaml"
	configFile   = "pipeline_config.yaml"
)

// SpillPath is the durable storage key holding the spilled snapshot for
// (branch, checkpoint id). The key is a pure function of its inputs so that
// reload never needs a directory index.
func SpillPath(branch, checkpointID string) string {
	return fmt.Sprint(url.PathEscape(branch), spillJoin, url.PathEscape(checkpointID), spillSuffix)
}

// SpillPathPrefix is the key prefix shared by every spill file of a branch
func SpillPathPrefix(branch string) string {
	return url.PathEscape(branch) + spillJoin
}

// ParseSpillPath yields the (branch, checkpoint id) components of a spill
// storage key, or ok=false if the key is not a spill file.
func ParseSpillPath(key string) (branch, checkpointID string, ok bool) {
	if !strings.HasSuffix(key, spillSuffix) {
		return "", "", false
	}
	stem := strings.TrimSuffix(key, spillSuffix)
	parts := strings.SplitN(stem, spillJoin, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	b, err := url.PathUnescape(parts[0])
	if err != nil {
		return "", "", false
	}
	id, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}
	return b, id, true
}

// ExportDatasetPath is the key of the origin dataset payload in an export bundle
func ExportDatasetPath(checkpointID string) string {
	return url.PathEscape(checkpointID) + spillSuffix
}

// ExportManifestPath is the key of the full store manifest in an export bundle
func ExportManifestPath() string {
	return manifestFile
}

// ExportConfigPath is the key of the terminal configuration in an export bundle
func ExportConfigPath() string {
	return configFile
}

// StagingName yields a fresh, unique directory name for a store instance's
// spill namespace, so that stores sharing a parent directory never collide.
func StagingName() string {
	return stagingPrefix + ksuid.New().String()
}
