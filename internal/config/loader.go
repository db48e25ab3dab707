package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file: path, else $JSPLIT_CONFIG, else ./jsplit.yaml if present
//  3. .env in the working directory, then JSPLIT_* environment variables
//  4. flags that were explicitly set
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	base := New()

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"groups":          base.Groups,
		"paths":           base.Paths,
		"prefix":          base.Prefix,
		"ext":             base.Ext,
		"paths_to_ignore": base.PathsToIgnore,
		"workers":         base.Workers,
		"format":          base.Format,
		"output_file":     base.OutputJSONFile,
		"output_dir":      base.OutputJSONDir,
		"log_level":       base.LogLevel,
		"history_table":   base.HistoryTable,
		"history_window":  base.HistoryWindow,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	configFile := findConfigFile(path)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	// JSPLIT_HISTORY_DSN -> history_dsn
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = configFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}
