// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tonogaishunsuke/xenonpy/pkg/dataset"
	"github.com/tonogaishunsuke/xenonpy/pkg/dlogger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xenonpy",
	Short: "xenonpy manages local datasets for materials informatics",
	Long: `xenonpy manages the local datasets used by the materials-informatics
toolkit: bundled element-property tables fetched once from the remote
catalog, user-owned versioned artifact stores, and plain URL downloads
into the local cache.
`,
}

var (
	logLevel string

	// cfg is resolved once per invocation, before any subcommand runs
	cfg    dataset.Config
	logger *zap.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", dlogger.LogLevelNone,
		"log level (info, debug, none)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if os.Getenv("XENONPY_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("XENONPY_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.xenonpy")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv() // read in environment variables that match
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	cfg, err = dataset.LoadConfig(viper.GetViper())
	if err != nil {
		wrapFatalln("resolving configuration", err)
	}
	logger, err = dlogger.New(logLevel)
	if err != nil {
		wrapFatalln("building logger", err)
	}
}
