// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"github.com/spf13/cobra"
)

var storeExportFlags struct {
	rename      string
	noTimestamp bool
}

var storeExportCmd = &cobra.Command{
	Use:   "export <target-dir>",
	Short: "Export the latest artifact of every name into one blob",
	Long: `Collect the latest artifact under every logical name into a single
name -> value mapping and write it as one opaque blob under the target
directory. By default the filename carries a timestamp suffix for
uniqueness.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		path, err := s.Export(args[0], storeExportFlags.rename, !storeExportFlags.noTimestamp)
		if err != nil {
			wrapFatalln("exporting store", err)
		}
		infoLogger.Println(path)
	},
}

func init() {
	storeExportCmd.Flags().StringVar(&storeExportFlags.rename, "rename", "",
		"export filename (default the dataset name)")
	storeExportCmd.Flags().BoolVar(&storeExportFlags.noTimestamp, "no-timestamp", false,
		"omit the timestamp suffix")
	storeCmd.AddCommand(storeExportCmd)
}
