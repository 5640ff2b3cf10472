// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"github.com/spf13/cobra"
)

var storeDeleteFlags struct {
	name  string
	index int
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one artifact from a logical name's history",
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		if err := s.Delete(storeDeleteFlags.name, storeDeleteFlags.index); err != nil {
			wrapFatalln("deleting artifact", err)
		}
	},
}

func init() {
	storeDeleteCmd.Flags().StringVar(&storeDeleteFlags.name, "name", "",
		"logical name (default \"unnamed\")")
	storeDeleteCmd.Flags().IntVar(&storeDeleteFlags.index, "index", 0,
		"history position, negative counts from the end")
	_ = storeDeleteCmd.MarkFlagRequired("index")
	storeCmd.AddCommand(storeDeleteCmd)
}
