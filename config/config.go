// Package config holds the runtime settings of the prediction system.
// Settings resolve in the usual precedence order: command-line flags, then
// FANTASY5_* environment variables, then an optional fantasy5.yml config
// file, then defaults.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath         = "data-path"
	ConfigMatrix           = "matrix"
	ConfigMatrixCSVPath    = "matrix-csv-path"
	ConfigGridRows         = "grid-rows"
	ConfigWindowSize       = "window-size"
	ConfigWraparound       = "wraparound"
	ConfigCaptureLevel     = "capture-level"
	ConfigRangesPath       = "ranges-path"
	ConfigLookback         = "lookback"
	ConfigStrategy         = "strategy"
	ConfigTicketCount      = "ticket-count"
	ConfigSeed             = "seed"
	ConfigApplyFilters     = "apply-filters"
	ConfigFilterConfigPath = "filter-config-path"
	ConfigDebug            = "debug"
)

type Config struct {
	viper *viper.Viper
}

// DefaultConfig returns a Config with every setting at its default, without
// reading flags, the environment, or a config file.
func DefaultConfig() *Config {
	c := &Config{viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.viper.SetDefault(ConfigDataPath, "./data/CA5_date.csv")
	c.viper.SetDefault(ConfigMatrix, "proximity")
	c.viper.SetDefault(ConfigMatrixCSVPath, "")
	c.viper.SetDefault(ConfigGridRows, 6)
	c.viper.SetDefault(ConfigWindowSize, 3)
	c.viper.SetDefault(ConfigWraparound, true)
	c.viper.SetDefault(ConfigCaptureLevel, "85")
	c.viper.SetDefault(ConfigRangesPath, "")
	c.viper.SetDefault(ConfigLookback, 1)
	c.viper.SetDefault(ConfigStrategy, "balanced")
	c.viper.SetDefault(ConfigTicketCount, 20)
	c.viper.SetDefault(ConfigSeed, int64(0))
	c.viper.SetDefault(ConfigApplyFilters, false)
	c.viper.SetDefault(ConfigFilterConfigPath, "")
	c.viper.SetDefault(ConfigDebug, false)
}

// Load resolves settings from args, the environment, and fantasy5.yml.
func (c *Config) Load(args []string) error {
	if c.viper == nil {
		c.viper = viper.New()
	}
	c.setDefaults()

	fs := pflag.NewFlagSet("fantasy5", pflag.ContinueOnError)
	fs.String(ConfigDataPath, "./data/CA5_date.csv", "path to the historical draw CSV")
	fs.String(ConfigMatrix, "proximity", "contact matrix variant: grid, grid-raw, proximity, csv")
	fs.String(ConfigMatrixCSVPath, "", "grid layout CSV, for the csv matrix variant")
	fs.Int(ConfigGridRows, 6, "rows in the grid matrix layout")
	fs.Int(ConfigWindowSize, 3, "half-width of the proximity window")
	fs.Bool(ConfigWraparound, true, "wrap the proximity window around the pool ends")
	fs.String(ConfigCaptureLevel, "85", "position filter capture level: 80, 85, 90")
	fs.String(ConfigRangesPath, "", "custom position range YAML, overrides capture-level")
	fs.Int(ConfigLookback, 1, "previous draws used for contact analysis")
	fs.String(ConfigStrategy, "balanced", "generation strategy")
	fs.Int(ConfigTicketCount, 20, "tickets to generate")
	fs.Int64(ConfigSeed, 0, "random seed; 0 derives one")
	fs.Bool(ConfigApplyFilters, false, "gate tickets through the composition filters")
	fs.String(ConfigFilterConfigPath, "", "composition filter config YAML")
	fs.Bool(ConfigDebug, false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.viper.BindPFlags(fs); err != nil {
		return err
	}

	c.viper.SetEnvPrefix("fantasy5")
	c.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.viper.AutomaticEnv()

	c.viper.SetConfigName("fantasy5")
	c.viper.AddConfigPath(".")
	if err := c.viper.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

func (c *Config) GetString(key string) string {
	return c.viper.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.viper.GetInt(key)
}

func (c *Config) GetInt64(key string) int64 {
	return c.viper.GetInt64(key)
}

func (c *Config) GetBool(key string) bool {
	return c.viper.GetBool(key)
}

// Set overrides a single setting, mainly for the shell's set command.
func (c *Config) Set(key string, value interface{}) {
	c.viper.Set(key, value)
}

// AllSettings returns a copy of every resolved setting.
func (c *Config) AllSettings() map[string]interface{} {
	return c.viper.AllSettings()
}
