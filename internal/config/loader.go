package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BACKOFFICE_"

// DefaultConfigFile is looked up in the working directory when --config is not given.
const DefaultConfigFile = "backoffice.yaml"

// sections are the nested config groups; their env and flag names use "_"
// or "-" where the config key uses ".".
var sections = []string{"log", "nav", "badge"}

// Load merges configuration. Precedence (highest to lowest):
// flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// BACKOFFICE_LOG_LEVEL -> log.level, BACKOFFICE_STATE_DIR -> state_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return keyFor(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_")
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only flags the user set; flag defaults must not mask the file or env.
			if !f.Changed {
				return "", nil
			}
			if f.Name == "config" {
				return "", nil
			}
			return keyFor(f.Name, "-"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, used, nil
}

// keyFor maps "log-level" / "log_level" to "log.level" and "state-dir" to "state_dir".
func keyFor(name, sep string) string {
	for _, s := range sections {
		if strings.HasPrefix(name, s+sep) {
			return s + "." + strings.ReplaceAll(strings.TrimPrefix(name, s+sep), "-", "_")
		}
	}
	return strings.ReplaceAll(name, "-", "_")
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultConfigFile, "backoffice.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
