// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"os"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifact histories in the store",
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		for _, name := range s.Names() {
			infoLogger.Printf("%s:", name)
			for i, e := range s.Entries(name) {
				size := "?"
				if fi, err := os.Stat(e.Path); err == nil {
					size = units.HumanSize(float64(fi.Size()))
				}
				infoLogger.Printf("  [%d] %s  %s  %s",
					i, e.Path, size, e.ModTime.Format("2006-01-02 15:04:05"))
			}
		}
	},
}

func init() {
	storeCmd.AddCommand(storeListCmd)
}
