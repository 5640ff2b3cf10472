// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"github.com/spf13/cobra"
)

// datasetCmd represents the dataset related commands
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Commands to access bundled and cached datasets",
	Long: `Commands to access datasets by identifier.

An identifier is either a preset name (fetched once from the remote
catalog and cached), the name of a user dataset directory, or a URL.`,
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}
