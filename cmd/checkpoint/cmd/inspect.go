package cmd

import (
	"bytes"
	"context"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/oneconcern/checkpoint/pkg/model"
)

const inspectLineTemplateString = `{{.Branch}} , {{.CheckpointID}} , {{.Key}}`

var inspectLineTemplate = template.Must(template.New("inspect line").Parse(inspectLineTemplateString))

type inspectLine struct {
	Branch       string
	CheckpointID string
	Key          string
}

// inspectCmd lists the durable snapshots in a staging namespace
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List the durable snapshots held in a staging directory",
	Long: `List the durable snapshots held in a staging directory.

Each spilled snapshot is keyed by its (branch, checkpoint) pair; keys which
do not parse as spill records are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := stagingStore()
		if err != nil {
			wrapFatalln("resolve staging directory", err)
			return
		}
		keys, err := store.Keys(context.Background())
		if err != nil {
			wrapFatalln("list staging directory", err)
			return
		}
		for _, key := range keys {
			branch, checkpointID, ok := model.ParseSpillPath(key)
			if !ok {
				continue
			}
			var buf bytes.Buffer
			if err := inspectLineTemplate.Execute(&buf, inspectLine{
				Branch:       branch,
				CheckpointID: checkpointID,
				Key:          key,
			}); err != nil {
				wrapFatalln("render line", err)
				return
			}
			infoLogger.Println(buf.String())
		}
	},
}

func init() {
	addStagingFlag(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}
