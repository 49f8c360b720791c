package config

import (
	stderrors "errors"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// DefaultEnvPrefix is the environment variable prefix used by all settings.
const DefaultEnvPrefix = "BGCS"

var (
	ErrConfigFileNotFound = errors.New(errors.ErrCodeConfigInvalid, "config file not found")
	ErrConfigParseError   = errors.New(errors.ErrCodeConfigInvalid, "config file could not be parsed")
	ErrConfigValidation   = errors.New(errors.ErrCodeConfigInvalid, "config validation failed")
)

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// ─────────────────────────────────────────────────────────────────────────────
// Options
// ─────────────────────────────────────────────────────────────────────────────

type loadOptions struct {
	configPath  string
	searchPaths []string
	envPrefix   string
	dotEnv      []string
	overrides   map[string]interface{}
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithConfigPath loads an explicit YAML file.  A missing file is an error.
func WithConfigPath(path string) LoadOption {
	return func(o *loadOptions) { o.configPath = path }
}

// WithSearchPaths looks for config.yaml in each directory in order.  Finding
// nothing is an error only when no other source is given.
func WithSearchPaths(dirs ...string) LoadOption {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, dirs...) }
}

// WithEnvPrefix replaces DefaultEnvPrefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// WithDotEnv loads the given .env files into the process environment before
// reading configuration.  With no arguments ".env" is tried and silently
// skipped when absent.
func WithDotEnv(files ...string) LoadOption {
	return func(o *loadOptions) {
		if len(files) == 0 {
			files = []string{""}
		}
		o.dotEnv = append(o.dotEnv, files...)
	}
}

// WithOverrides sets keys with the highest precedence, above env and file.
func WithOverrides(values map[string]interface{}) LoadOption {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]interface{}, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Loading
// ─────────────────────────────────────────────────────────────────────────────

// newViper builds a Viper instance with YAML file type, the env prefix, and a
// key replacer that maps "limits.max_plans" to BGCS_LIMITS_MAX_PLANS.
func newViper(prefix string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k, val := range defaultKeys() {
		v.SetDefault(k, val)
	}
	return v
}

// Load resolves configuration from defaults, an optional YAML file and
// BGCS_* environment overrides, then validates it.  The result also becomes
// the value returned by Get.
func Load(opts ...LoadOption) (*Config, error) {
	o := &loadOptions{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(o)
	}

	if err := loadDotEnv(o.dotEnv); err != nil {
		return nil, err
	}

	v := newViper(o.envPrefix)
	if err := readFile(v, o); err != nil {
		return nil, err
	}
	for k, val := range o.overrides {
		v.Set(k, val)
	}

	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}
	setGlobal(cfg)
	return cfg, nil
}

// LoadFromEnv builds a Config from defaults and environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load()
}

// MustLoad is Load that panics on error; intended for main().
func MustLoad(opts ...LoadOption) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic("config: MustLoad failed: " + err.Error())
	}
	return cfg
}

// Get returns the most recently loaded configuration, or Default() when
// nothing has been loaded yet.
func Get() *Config {
	globalMu.RLock()
	cfg := globalCfg
	globalMu.RUnlock()
	if cfg == nil {
		return Default()
	}
	return cfg
}

func setGlobal(cfg *Config) {
	globalMu.Lock()
	globalCfg = cfg
	globalMu.Unlock()
}

func loadDotEnv(files []string) error {
	for _, f := range files {
		if f == "" {
			if _, err := os.Stat(".env"); err == nil {
				if err := godotenv.Load(".env"); err != nil {
					return ErrConfigParseError.WithDetail(".env").WithCause(err)
				}
			}
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if os.IsNotExist(err) {
				return ErrConfigFileNotFound.WithDetail(f).WithCause(err)
			}
			return ErrConfigParseError.WithDetail(f).WithCause(err)
		}
	}
	return nil
}

func readFile(v *viper.Viper, o *loadOptions) error {
	switch {
	case o.configPath != "":
		if _, err := os.Stat(o.configPath); err != nil {
			return ErrConfigFileNotFound.WithDetail(o.configPath).WithCause(err)
		}
		v.SetConfigFile(o.configPath)
	case len(o.searchPaths) > 0:
		v.SetConfigName("config")
		for _, dir := range o.searchPaths {
			v.AddConfigPath(dir)
		}
	default:
		return nil
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return ErrConfigFileNotFound.WithDetail(strings.Join(o.searchPaths, ",")).WithCause(err)
		}
		return ErrConfigParseError.WithDetail(v.ConfigFileUsed()).WithCause(err)
	}
	return nil
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ErrConfigParseError.WithCause(err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, ErrConfigValidation.WithDetail(err.Error()).WithCause(err)
	}
	return cfg, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Hot reload
// ─────────────────────────────────────────────────────────────────────────────

// Watch starts watching path and invokes onChange with each valid new
// configuration.  Invalid edits are reported to onError (when non-nil) and the
// previous configuration stays in effect.  Watch does not block.
func Watch(path string, onChange func(*Config), onError func(error)) error {
	v := newViper(DefaultEnvPrefix)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return ErrConfigParseError.WithDetail(path).WithCause(err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		setGlobal(cfg)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

//Personal.AI order the ending
