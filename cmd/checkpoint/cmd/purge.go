package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oneconcern/checkpoint/pkg/dlogger"
	"github.com/oneconcern/checkpoint/pkg/errors"
	"github.com/oneconcern/checkpoint/pkg/model"
)

var errNoStaging = errors.New("no staging directory: set --staging or staging_path in the config file")

// purgeCmd erases every durable snapshot in a staging namespace
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Synchronously erase all durable snapshots in a staging directory",
	Long: `Synchronously erase all durable snapshots in a staging directory.

This is the compliance-grade erasure path for sessions which are no longer
running: every spilled snapshot under the staging directory is removed before
the command returns. Irreversible.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := stagingStore()
		if err != nil {
			wrapFatalln("resolve staging directory", err)
			return
		}
		logger, err := dlogger.GetLogger(storeConfig.LogLevel)
		if err != nil {
			wrapFatalln("build logger", err)
			return
		}
		ctx := context.Background()
		keys, err := store.Keys(ctx)
		if err != nil {
			wrapFatalln("list staging directory", err)
			return
		}
		if err := store.Clear(ctx); err != nil {
			wrapFatalln("clear staging directory", err)
			return
		}
		// audit trail, no user data
		logger.Info("session data purged",
			zap.Time("purged_at", model.NowUTC()),
			zap.Stringer("staging", store),
			zap.Int("artifacts_removed", len(keys)),
		)
		infoLogger.Printf("purged %d durable artifact(s) from %s", len(keys), store)
	},
}

func init() {
	addStagingFlag(purgeCmd)
	rootCmd.AddCommand(purgeCmd)
}
