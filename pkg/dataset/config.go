// Copyright © 2019 Shunsuke Tonogai

package dataset

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the filesystem roots and the remote catalog base URL.
// It is resolved once, at loader or store construction time; no
// component consults the configuration machinery afterwards.
type Config struct {
	// CacheRoot receives files fetched from explicit URLs.
	CacheRoot string `json:"cache_root" yaml:"cache_root" mapstructure:"cache_root"`
	// DatasetRoot caches the bundled preset datasets.
	DatasetRoot string `json:"dataset_root" yaml:"dataset_root" mapstructure:"dataset_root"`
	// UserDataRoot holds one store directory per user dataset.
	UserDataRoot string `json:"userdata" yaml:"userdata" mapstructure:"userdata"`
	// BaseURL locates the canonical preset downloads.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
}

// DefaultBaseURL is the canonical remote catalog for preset datasets.
const DefaultBaseURL = "https://github.com/yoshida-lab/XenonPy/releases/download/v0.1.0"

// DefaultConfig resolves the conventional roots under ~/.xenonpy.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	root := filepath.Join(home, ".xenonpy")
	return Config{
		CacheRoot:    filepath.Join(root, "cached"),
		DatasetRoot:  filepath.Join(root, "dataset"),
		UserDataRoot: filepath.Join(root, "userdata"),
		BaseURL:      DefaultBaseURL,
	}, nil
}

// LoadConfig resolves the configuration from defaults, then the viper
// lookup (config file), then environment variables, in increasing
// precedence. Pass nil to use the process-global viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}
	if v == nil {
		v = viper.GetViper()
	}
	fromLookup := func(key string, target *string) {
		if s := v.GetString(key); s != "" {
			*target = s
		}
	}
	fromLookup("cache_root", &cfg.CacheRoot)
	fromLookup("dataset_root", &cfg.DatasetRoot)
	fromLookup("userdata", &cfg.UserDataRoot)
	fromLookup("base_url", &cfg.BaseURL)

	fromEnv := func(key string, target *string) {
		if s := os.Getenv(key); s != "" {
			*target = s
		}
	}
	fromEnv("XENONPY_CACHE_ROOT", &cfg.CacheRoot)
	fromEnv("XENONPY_DATASET_ROOT", &cfg.DatasetRoot)
	fromEnv("XENONPY_USERDATA", &cfg.UserDataRoot)
	fromEnv("XENONPY_BASE_URL", &cfg.BaseURL)
	return cfg, nil
}
