// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var storeLatestFlags struct {
	name  string
	index int
}

var storeLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the most recent artifact under a logical name",
	Long: `Print an artifact under a logical name, by default the most recent
one. Tabular artifacts print as CSV, opaque artifacts print their
decoded Go value.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		v, err := s.Get(storeLatestFlags.name, storeLatestFlags.index)
		if err != nil {
			wrapFatalln("reading artifact", err)
		}
		if v.IsTabular() {
			if err := v.Table().WriteCSV(os.Stdout); err != nil {
				wrapFatalln("writing table", err)
			}
			return
		}
		infoLogger.Printf("%v", v.Opaque())
	},
}

func init() {
	storeLatestCmd.Flags().StringVar(&storeLatestFlags.name, "name", "",
		"logical name (default \"unnamed\")")
	storeLatestCmd.Flags().IntVar(&storeLatestFlags.index, "index", -1,
		"history position, negative counts from the end")
	storeCmd.AddCommand(storeLatestCmd)
}
