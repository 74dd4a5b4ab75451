package config

import (
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates sections: WHATIF_COMMANDS__TIMEOUT sets commands.timeout.
const EnvPrefix = "WHATIF_"

// UserConfigPath is the config file looked up under the XDG config dirs
const UserConfigPath = "whatif/config.toml"

// LoadOptions controls which layers Load reads
type LoadOptions struct {
	// ConfigFile is an explicit user config file. It must exist.
	ConfigFile string
	// Overrides are applied last, keyed by dotted path
	Overrides      map[string]interface{}
	SkipUserConfig bool
	SkipEnv        bool
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	if !opts.SkipUserConfig {
		path, err := userConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		if path != "" {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded user config")
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// userConfigFile resolves the user config layer. An explicit path must
// exist; the XDG lookup finding nothing is not an error.
func userConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", explicit)
		}
		return explicit, nil
	}

	xdg.Reload()
	path, err := xdg.SearchConfigFile(UserConfigPath)
	if err != nil {
		return "", nil
	}
	return path, nil
}

func validate(cfg *Config) error {
	if cfg.Commands.Shell == "" {
		return errors.New(errors.ErrInvalidInput, "commands.shell cannot be empty")
	}
	if cfg.Commands.Timeout <= 0 {
		return errors.Newf(errors.ErrInvalidInput, "commands.timeout must be positive, got %s", cfg.Commands.Timeout)
	}
	if cfg.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrInvalidInput, "logging.verbosity cannot be negative, got %d", cfg.Logging.Verbosity)
	}
	return nil
}
