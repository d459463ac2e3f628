package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/cratemap/cratemap/pkg/errors"
	"github.com/cratemap/cratemap/pkg/watch"
)

// defaultConfigFile is picked up from the working directory when no
// --config flag is given.
const defaultConfigFile = "cratemap.toml"

// defaultServeAddr is the listen address used when neither the config file
// nor --addr specifies one.
const defaultServeAddr = "localhost:7878"

// fileConfig mirrors the optional cratemap.toml file:
//
//	[watch]
//	poll_interval_ms = 400
//	debounce_interval_ms = 500
//
//	[serve]
//	addr = "localhost:7878"
//
// All fields are optional; zero values select the built-in defaults.
// Command-line flags win over file values.
type fileConfig struct {
	Watch watchFileConfig `toml:"watch"`
	Serve serveFileConfig `toml:"serve"`
}

type watchFileConfig struct {
	PollIntervalMS     int `toml:"poll_interval_ms"`
	DebounceIntervalMS int `toml:"debounce_interval_ms"`
}

type serveFileConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads the TOML config at path. An empty path means "use
// cratemap.toml from the working directory if present"; a missing default
// file is not an error, a missing explicit file is.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err,
			"config file %q is not readable", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err,
			"config file %q is not valid TOML", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c fileConfig) validate() error {
	if c.Watch.PollIntervalMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "watch.poll_interval_ms must not be negative")
	}
	if c.Watch.DebounceIntervalMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "watch.debounce_interval_ms must not be negative")
	}
	return nil
}

// watchConfig folds file values and flag overrides into a watch.Config.
// A flag value of 0 means "not set on the command line".
func (c fileConfig) watchConfig(pollFlag, debounceFlag time.Duration, logger *log.Logger) watch.Config {
	cfg := watch.Config{
		PollInterval:     time.Duration(c.Watch.PollIntervalMS) * time.Millisecond,
		DebounceInterval: time.Duration(c.Watch.DebounceIntervalMS) * time.Millisecond,
		Logger:           logger,
	}
	if pollFlag > 0 {
		cfg.PollInterval = pollFlag
	}
	if debounceFlag > 0 {
		cfg.DebounceInterval = debounceFlag
	}
	return cfg
}

// serveAddr resolves the listen address from flag, file, and default, in
// that order of precedence.
func (c fileConfig) serveAddr(addrFlag string) string {
	if addrFlag != "" {
		return addrFlag
	}
	if c.Serve.Addr != "" {
		return c.Serve.Addr
	}
	return defaultServeAddr
}
