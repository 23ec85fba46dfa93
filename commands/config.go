package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decentralwatch/registry"
	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/x/watch"
	"github.com/spf13/viper"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome      = "home"
	flagChainID   = "chain_id"
	flagProgramID = "program_id"
	flagLogLevel  = "log_level"

	envPrefix = "WATCHD"
)

// Config is the node configuration read from $HOME/config.toml and from
// WATCHD_ prefixed environment variables.
type Config struct {
	Home      string `mapstructure:"home"`
	ChainID   string `mapstructure:"chain_id"`
	ProgramID string `mapstructure:"program_id"`
	LogLevel  string `mapstructure:"log_level"`
	DBDir     string `mapstructure:"db_dir"`

	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`

	Redis struct {
		URL     string `mapstructure:"url"`
		Channel string `mapstructure:"channel"`
	} `mapstructure:"redis"`
}

// DefaultHome is where the node keeps its files unless configured
// otherwise.
func DefaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".watchd")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(flagHome, DefaultHome())
	v.SetDefault(flagChainID, "watch-local")
	v.SetDefault(flagProgramID, watch.DefaultProgramID)
	v.SetDefault(flagLogLevel, "main:info,state:info,*:error")
	v.SetDefault("kafka.topic", "watch-events")
	v.SetDefault("redis.channel", "watch-events")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the configuration file from the home directory, if one
// exists, and merges it with flags and the environment.
func LoadConfig(v *viper.Viper) (Config, error) {
	var cfg Config

	home := v.GetString(flagHome)
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, errors.Wrapf(errors.ErrInput, "config: %s", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "config: %s", err)
	}
	if cfg.DBDir == "" {
		cfg.DBDir = filepath.Join(home, "data")
	}
	if !registry.IsValidChainID(cfg.ChainID) {
		return cfg, errors.Wrapf(errors.ErrInput, "invalid chain id %q", cfg.ChainID)
	}
	return cfg, nil
}

// Program returns the configured program id.
func (c Config) Program() (registry.Identity, error) {
	id, err := registry.ParseIdentity(c.ProgramID)
	if err != nil {
		return id, errors.Wrap(err, "program id")
	}
	return id, nil
}

// Logger returns a logger filtered with the configured level. The level uses
// the tendermint format, for example "main:info,*:error", or a single level
// for all modules. Modules without an entry log at info. An empty level
// disables filtering.
func (c Config) Logger(w io.Writer) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	if c.LogLevel == "" {
		return logger, nil
	}
	filtered, err := tmflags.ParseLogLevel(c.LogLevel, logger, "info")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return filtered, nil
}
