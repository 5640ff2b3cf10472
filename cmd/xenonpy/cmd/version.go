// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"bytes"

	"github.com/spf13/cobra"
)

// set at build time via -ldflags
var (
	Version   string
	BuildDate string
	GitCommit string
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string `json:"version,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
}

// NewVersionInfo fills in defaults for unreleased builds.
func NewVersionInfo() VersionInfo {
	v := VersionInfo{
		Version:   "dev",
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	}
	if Version != "" {
		v.Version = Version
	}
	return v
}

func (v VersionInfo) String() string {
	var buf bytes.Buffer
	buf.WriteString("Version: ")
	buf.WriteString(v.Version)
	buf.WriteString("\nBuild date: ")
	buf.WriteString(v.BuildDate)
	buf.WriteString("\nCommit: ")
	buf.WriteString(v.GitCommit)
	buf.WriteString("\n")
	return buf.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the version of xenonpy",
	Run: func(cmd *cobra.Command, args []string) {
		infoLogger.Print(NewVersionInfo().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
