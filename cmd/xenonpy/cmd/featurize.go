// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonogaishunsuke/xenonpy/pkg/dataset"
	"github.com/tonogaishunsuke/xenonpy/pkg/featurizer"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

var featurizeFlags struct {
	comps       []string
	elementsCSV string
	include     []string
	exclude     []string
}

var featurizeCmd = &cobra.Command{
	Use:   "featurize",
	Short: "Compute compositional descriptors",
	Long: `Compute compositional descriptors for one or more compositions given
in symbol:amount notation, e.g. --comp "Fe:2,O:3". Element properties
come from the bundled elements_completed dataset unless --elements-csv
points at a local table.`,
	Run: func(cmd *cobra.Command, args []string) {
		var elements *tabular.Table
		if featurizeFlags.elementsCSV != "" {
			f, err := os.Open(featurizeFlags.elementsCSV)
			if err != nil {
				wrapFatalln("opening "+featurizeFlags.elementsCSV, err)
			}
			elements, err = tabular.ReadCSV(f)
			_ = f.Close()
			if err != nil {
				wrapFatalln("parsing "+featurizeFlags.elementsCSV, err)
			}
		} else {
			loader := dataset.NewLoader(cfg, dataset.Logger(logger))
			var err error
			elements, err = loader.ElementsCompleted(context.Background())
			if err != nil {
				wrapFatalln("loading element properties", err)
			}
		}

		var opts []featurizer.Option
		if len(featurizeFlags.include) > 0 {
			opts = append(opts, featurizer.Include(featurizeFlags.include...))
		}
		if len(featurizeFlags.exclude) > 0 {
			opts = append(opts, featurizer.Exclude(featurizeFlags.exclude...))
		}
		calc, err := featurizer.NewCompositions(elements, opts...)
		if err != nil {
			wrapFatalln("building featurizer", err)
		}

		comps := make([]featurizer.Composition, 0, len(featurizeFlags.comps))
		for _, s := range featurizeFlags.comps {
			comp, err := featurizer.ParseComposition(s)
			if err != nil {
				wrapFatalln("parsing composition", err)
			}
			comps = append(comps, comp)
		}
		out, err := calc.Transform(comps...)
		if err != nil {
			wrapFatalln("computing descriptors", err)
		}
		if err := out.WriteCSV(os.Stdout); err != nil {
			wrapFatalln("writing descriptors", err)
		}
	},
}

func init() {
	featurizeCmd.Flags().StringArrayVar(&featurizeFlags.comps, "comp", nil,
		"composition in symbol:amount notation, repeatable")
	featurizeCmd.Flags().StringVar(&featurizeFlags.elementsCSV, "elements-csv", "",
		"local element property table instead of the bundled dataset")
	featurizeCmd.Flags().StringSliceVar(&featurizeFlags.include, "include", nil,
		"property columns to use")
	featurizeCmd.Flags().StringSliceVar(&featurizeFlags.exclude, "exclude", nil,
		"property columns to skip")
	_ = featurizeCmd.MarkFlagRequired("comp")
	rootCmd.AddCommand(featurizeCmd)
}
