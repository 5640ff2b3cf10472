// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tonogaishunsuke/xenonpy/pkg/store"
)

var storeFlags struct {
	dataset  string
	absolute bool
}

// storeCmd represents the artifact store related commands
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Commands to manage a user dataset store",
	Long: `Commands to manage the versioned artifact store backing one user
dataset. The store directory lives under the user-data root, or at an
absolute path with --absolute.`,
}

func openStore() *store.Store {
	opts := []store.Option{store.Logger(logger)}
	if storeFlags.absolute {
		opts = append(opts, store.Absolute())
	}
	s, err := store.Open(storeFlags.dataset, cfg.UserDataRoot, opts...)
	if err != nil {
		wrapFatalln("opening store "+storeFlags.dataset, err)
	}
	return s
}

func init() {
	storeCmd.PersistentFlags().StringVar(&storeFlags.dataset, "dataset", "",
		"dataset name, or an absolute store path with --absolute")
	storeCmd.PersistentFlags().BoolVar(&storeFlags.absolute, "absolute", false,
		"treat --dataset as an absolute path")
	_ = storeCmd.MarkPersistentFlagRequired("dataset")
	rootCmd.AddCommand(storeCmd)
}
