package util

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds runtime settings. Precedence: defaults, config file,
// LAAG_* environment, then flags applied by the caller.
type Config struct {
	Env      string `toml:"env" env:"ENV"`
	Locale   string `toml:"locale" env:"LOCALE"`
	Theme    string `toml:"theme" env:"THEME"`
	LogPath  string `toml:"log_path" env:"LOG_PATH"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`

	SplashDelay        time.Duration `toml:"splash_delay" env:"SPLASH_DELAY"`
	StepInterval       time.Duration `toml:"step_interval" env:"STEP_INTERVAL"`
	IdentifyDuration   time.Duration `toml:"identify_duration" env:"IDENTIFY_DURATION"`
	IdentifyTimeout    time.Duration `toml:"identify_timeout" env:"IDENTIFY_TIMEOUT"`
	TipInterval        time.Duration `toml:"tip_interval" env:"TIP_INTERVAL"`
	TransitTipInterval time.Duration `toml:"transit_tip_interval" env:"TRANSIT_TIP_INTERVAL"`

	SkipOnboarding bool `toml:"skip_onboarding" env:"SKIP_ONBOARDING"`
}

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "LAAG_"

// Defaults mirror the timings of the mobile app.
func Defaults() Config {
	return Config{
		Env:                "DEV",
		Locale:             "en",
		Theme:              "laag",
		LogPath:            filepath.Join(os.TempDir(), "laagtabai", "laagtabai.log"),
		LogLevel:           "info",
		SplashDelay:        3 * time.Second,
		StepInterval:       800 * time.Millisecond,
		IdentifyDuration:   3200 * time.Millisecond,
		TipInterval:        3 * time.Second,
		TransitTipInterval: 4 * time.Second,
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/laagtabai/config.toml, or the
// platform equivalent.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "laagtabai", "config.toml")
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "decode config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return cfg, errors.Wrapf(err, "stat config %s", path)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, errors.Wrap(err, "parse environment")
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Locale) {
	case "", "en", "ceb":
	default:
		return errors.Errorf("unsupported locale %q (want en or ceb)", c.Locale)
	}
	for name, d := range map[string]time.Duration{
		"splash_delay":         c.SplashDelay,
		"step_interval":        c.StepInterval,
		"tip_interval":         c.TipInterval,
		"transit_tip_interval": c.TransitTipInterval,
	} {
		if d <= 0 {
			return errors.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.IdentifyDuration < 0 || c.IdentifyTimeout < 0 {
		return errors.New("identify durations must not be negative")
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.Env, "dev")
}
