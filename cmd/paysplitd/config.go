package main

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the node configuration, stored as config.toml in the home
// directory.
type Config struct {
	ChainID   string `toml:"chain_id"`
	LogLevel  string `toml:"log_level"`
	DBBackend string `toml:"db_backend"`
	Debug     bool   `toml:"debug"`
}

const (
	backendLevelDB = "goleveldb"
	// State of a memdb node is lost when the process exits.
	backendMemDB = "memdb"
)

// DefaultConfig returns the configuration used for all values not present
// in the configuration file.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		DBBackend: backendLevelDB,
	}
}

// Validate returns an error if the configuration cannot be used to run a
// node.
func (c Config) Validate() error {
	if c.ChainID != "" && !paysplit.IsValidChainID(c.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain_id: %q", c.ChainID)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errors.ErrInput, "log_level: %s", err)
	}
	switch c.DBBackend {
	case backendLevelDB, backendMemDB:
	default:
		return errors.Wrapf(errors.ErrInput, "db_backend: %q", c.DBBackend)
	}
	return nil
}

// loadConfig reads the configuration file. Values not defined in the file
// are taken from DefaultConfig.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrInput, "load config: %s", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return Config{}, errors.Wrapf(errors.ErrInput, "unknown config keys: %v", undecoded)
	}

	if meta.IsDefined("chain_id") {
		cfg.ChainID = strings.TrimSpace(raw.ChainID)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("db_backend") {
		cfg.DBBackend = strings.TrimSpace(raw.DBBackend)
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// writeConfig stores the configuration. An existing file is overwritten.
func writeConfig(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "create config: %s", err)
	}
	defer fd.Close()

	if err := toml.NewEncoder(fd).Encode(cfg); err != nil {
		return errors.Wrapf(errors.ErrInput, "write config: %s", err)
	}
	return fd.Close()
}
