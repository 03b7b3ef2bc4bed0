package config

import (
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigFile               = "config"
	ConfigCPUProfile         = "cpu-profile"
	ConfigSearchDepth        = "search-depth"
	ConfigSearchTimeLimit    = "search-time-limit"
	ConfigIterativeDeepening = "iterative-deepening"
	ConfigMoveOrdering       = "move-ordering"
	ConfigKomi               = "komi"
	ConfigWeightsFile        = "weights-file"
	ConfigTTEnabled          = "tt-enabled"
	ConfigTTPolicy           = "tt-policy"
	ConfigTTSizePower        = "tt-size-power"
	ConfigTTMemoryFraction   = "tt-memory-fraction"
	ConfigTTVerify           = "tt-verify"
)

// searchedConfigFile is looked up under the XDG config directories when
// no config file is given explicitly.
const searchedConfigFile = "go5/config.yaml"

type Config struct {
	*viper.Viper
}

// FlagSet returns a flag set with every configuration flag registered.
// Binaries add their own flags to it before calling Load.
func FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigFile, "", "path to a YAML config file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.Int(ConfigSearchDepth, 0, "search horizon in plies; 0 uses the weights file's depth")
	fs.Duration(ConfigSearchTimeLimit, 0, "give up a search after this long; 0 means no limit")
	fs.Bool(ConfigIterativeDeepening, false, "search 1, 2, ... plies and keep the deepest completed result")
	fs.Bool(ConfigMoveOrdering, true, "order candidates by a one-ply lookahead")
	fs.Float64(ConfigKomi, 2.5, "komi awarded to white when judging a finished game")
	fs.String(ConfigWeightsFile, "", "YAML file with evaluation weights")
	fs.Bool(ConfigTTEnabled, true, "use a transposition table")
	fs.String(ConfigTTPolicy, "keep-deepest", "transposition table replacement policy: always-overwrite or keep-deepest")
	fs.Int(ConfigTTSizePower, 16, "transposition table holds 2^n entries")
	fs.Float64(ConfigTTMemoryFraction, 0.25, "upper bound on the table's share of system memory")
	fs.Bool(ConfigTTVerify, false, "store board digests to count full-key hash collisions")
	return fs
}

// Load parses args into fs and layers, from lowest to highest priority,
// the flag defaults, the config file, GO5_* environment variables and
// flags given on the command line.
func (c *Config) Load(fs *pflag.FlagSet, args []string) error {
	return c.load(fs, args, true)
}

func (c *Config) load(fs *pflag.FlagSet, args []string, searchFile bool) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.Viper = viper.New()
	c.SetEnvPrefix("go5")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	cfgFile := c.GetString(ConfigFile)
	if cfgFile == "" && searchFile {
		if path, err := xdg.SearchConfigFile(searchedConfigFile); err == nil {
			cfgFile = path
		}
	}
	if cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	return nil
}

// DefaultConfig is the configuration with no flags and no config file,
// for tests and library callers.
func DefaultConfig() *Config {
	c := &Config{}
	if err := c.load(FlagSet("go5"), nil, false); err != nil {
		panic(err)
	}
	return c
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
