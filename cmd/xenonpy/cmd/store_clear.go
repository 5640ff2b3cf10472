// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"github.com/spf13/cobra"
)

var storeClearFlags struct {
	name string
	all  bool
}

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every artifact under a name, or the whole store",
	Long: `Remove every artifact under a logical name, or with --all the whole
store root directory. There is no trash and no undo.`,
	Run: func(cmd *cobra.Command, args []string) {
		if storeClearFlags.all && storeClearFlags.name != "" {
			wrapFatalln("--name and --all are mutually exclusive", nil)
		}
		if !storeClearFlags.all && storeClearFlags.name == "" {
			wrapFatalln("one of --name or --all is required", nil)
		}
		s := openStore()
		if err := s.Clear(storeClearFlags.name); err != nil {
			wrapFatalln("clearing store", err)
		}
	},
}

func init() {
	storeClearCmd.Flags().StringVar(&storeClearFlags.name, "name", "",
		"logical name to clear")
	storeClearCmd.Flags().BoolVar(&storeClearFlags.all, "all", false,
		"clear the entire store root")
	storeCmd.AddCommand(storeClearCmd)
}
