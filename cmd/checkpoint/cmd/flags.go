package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/oneconcern/checkpoint/pkg/storage"
	"github.com/oneconcern/checkpoint/pkg/storage/localfs"
)

var stagingPath string

func addStagingFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stagingPath, "staging", "",
		"Path to the staging directory holding a session's durable snapshots")
}

// stagingStore resolves the staging namespace from the flag or the config file
func stagingStore() (storage.Store, error) {
	path := stagingPath
	if path == "" {
		path = storeConfig.StagingPath
	}
	if path == "" {
		return nil, errNoStaging
	}
	return localfs.New(afero.NewBasePathFs(afero.NewOsFs(), path)), nil
}
