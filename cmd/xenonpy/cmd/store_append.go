// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tonogaishunsuke/xenonpy/pkg/codec"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

var storeAppendFlags struct {
	name    string
	tabular bool
}

var storeAppendCmd = &cobra.Command{
	Use:   "append <file>...",
	Short: "Append files to the store as new artifact versions",
	Long: `Append one or more files under a logical name, each getting the next
version number. With --tabular the files are parsed as CSV tables and
stored with the tabular encoding; otherwise the raw bytes are stored as
opaque blobs.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		values := make([]codec.Value, 0, len(args))
		for _, path := range args {
			if storeAppendFlags.tabular {
				f, err := os.Open(path)
				if err != nil {
					wrapFatalln("opening "+path, err)
				}
				t, err := tabular.ReadCSV(f)
				_ = f.Close()
				if err != nil {
					wrapFatalln("parsing "+path, err)
				}
				values = append(values, codec.Tabular(t))
			} else {
				b, err := os.ReadFile(path)
				if err != nil {
					wrapFatalln("reading "+path, err)
				}
				values = append(values, codec.Opaque(b))
			}
		}
		var err error
		if storeAppendFlags.name == "" {
			err = s.AppendUnnamed(values...)
		} else {
			err = s.AppendNamed(storeAppendFlags.name, values...)
		}
		if err != nil {
			wrapFatalln("appending to store", err)
		}
	},
}

func init() {
	storeAppendCmd.Flags().StringVar(&storeAppendFlags.name, "name", "",
		"logical name for the appended artifacts (default \"unnamed\")")
	storeAppendCmd.Flags().BoolVar(&storeAppendFlags.tabular, "tabular", false,
		"parse inputs as CSV tables")
	storeCmd.AddCommand(storeAppendCmd)
}
