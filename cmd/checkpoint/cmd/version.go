package cmd

import (
	"bytes"

	"github.com/spf13/cobra"
)

// populated at build time with -ldflags
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// VersionInfo describes the built binary
type VersionInfo struct {
	Version   string `json:"version,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	GitState  string `json:"gitState,omitempty"`
}

// NewVersionInfo yields the version of the running binary
func NewVersionInfo() VersionInfo {
	ver := VersionInfo{
		Version:   "dev",
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	}
	if Version != "" {
		ver.Version = Version
		ver.GitState = "clean"
	}
	if GitState != "" {
		ver.GitState = GitState
	}
	return ver
}

func (v VersionInfo) String() string {
	var buf bytes.Buffer
	buf.WriteString("Version: " + v.Version)
	if v.BuildDate != "" {
		buf.WriteString("\nBuild date: " + v.BuildDate)
	}
	if v.GitCommit != "" {
		buf.WriteString("\nCommit: " + v.GitCommit)
	}
	if v.GitState != "" {
		buf.WriteString("\nState: " + v.GitState)
	}
	return buf.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of this binary",
	Run: func(cmd *cobra.Command, args []string) {
		infoLogger.Println(NewVersionInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
