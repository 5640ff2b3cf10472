// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"context"
	"os"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/tonogaishunsuke/xenonpy/pkg/dataset"
)

var datasetGetFlags struct {
	chunkSize string
	out       string
}

var datasetGetCmd = &cobra.Command{
	Use:   "get <identifier>",
	Short: "Resolve a dataset identifier and print the result",
	Long: `Resolve a dataset identifier.

Preset tables are printed as CSV (or written to --out). A user dataset
prints its store summary. A URL prints the local path of the download.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		chunk, err := units.RAMInBytes(datasetGetFlags.chunkSize)
		if err != nil {
			wrapFatalln("parsing --chunk-size", err)
		}
		loader := dataset.NewLoader(cfg,
			dataset.Logger(logger),
			dataset.ChunkSize(int(chunk)),
		)
		res, err := loader.Resolve(context.Background(), args[0])
		if err != nil {
			wrapFatalln("resolving "+args[0], err)
		}
		switch res.Kind {
		case dataset.KindTable:
			out := os.Stdout
			if datasetGetFlags.out != "" {
				f, err := os.Create(datasetGetFlags.out)
				if err != nil {
					wrapFatalln("creating "+datasetGetFlags.out, err)
				}
				defer f.Close()
				out = f
			}
			if err := res.Table.WriteCSV(out); err != nil {
				wrapFatalln("writing table", err)
			}
		case dataset.KindStore:
			infoLogger.Println(res.Store.String())
		case dataset.KindPath:
			infoLogger.Println(res.Path)
		}
	},
}

func init() {
	datasetGetCmd.Flags().StringVar(&datasetGetFlags.chunkSize, "chunk-size", "256k",
		"download streaming buffer size")
	datasetGetCmd.Flags().StringVar(&datasetGetFlags.out, "out", "",
		"write a preset table to this file instead of stdout")
	datasetCmd.AddCommand(datasetGetCmd)
}
