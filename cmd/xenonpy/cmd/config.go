// Copyright © 2019 Shunsuke Tonogai

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the xenonpy config",
	Long: `Commands to manage the xenonpy config file, the set of root paths and
the catalog base URL that do not change across runs.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	Run: func(cmd *cobra.Command, args []string) {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			wrapFatalln("rendering configuration", err)
		}
		infoLogger.Print(string(b))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one key in the config file",
	Long: `Set one key in ~/.xenonpy/config.yaml, creating the file if needed.
Known keys: cache_root, dataset_root, userdata, base_url.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		home, err := os.UserHomeDir()
		if err != nil {
			wrapFatalln("locating home directory", err)
		}
		dir := filepath.Join(home, ".xenonpy")
		if err := os.MkdirAll(dir, 0700); err != nil {
			wrapFatalln("creating "+dir, err)
		}
		path := filepath.Join(dir, "config.yaml")

		values := map[string]interface{}{}
		if b, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(b, &values); err != nil {
				wrapFatalln("parsing "+path, err)
			}
		}
		values[args[0]] = args[1]

		b, err := yaml.Marshal(values)
		if err != nil {
			wrapFatalln("rendering "+path, err)
		}
		if err := os.WriteFile(path, b, 0600); err != nil {
			wrapFatalln("writing "+path, err)
		}
		infoLogger.Println("wrote", path)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
