package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the isogrid configuration file
// (~/.config/isogrid/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	GridPath string `yaml:"grid_path"`

	// Query defaults
	DistancePC *float64 `yaml:"distance_pc"`
	AV         *float64 `yaml:"av"`
	ExtTable   *bool    `yaml:"ext_table"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "isogrid", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or doesn't parse.
func LoadConfig() Config {
	return loadConfigFrom(configPath())
}

func loadConfigFrom(path string) Config {
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyCommonConfig applies config file defaults to the shared flag
// variables when the corresponding CLI flag was not explicitly set.
func applyCommonConfig(c *cli.Command, cfg Config) {
	if cfg.GridPath != "" && !c.IsSet("grid") {
		gridPath = cfg.GridPath
	}
	if cfg.ExtTable != nil && !c.IsSet("ext-table") {
		extTable = *cfg.ExtTable
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyQueryConfig applies query-command defaults.
func applyQueryConfig(c *cli.Command, cfg Config, distance, av *float64) {
	if cfg.DistancePC != nil && !c.IsSet("distance") {
		*distance = *cfg.DistancePC
	}
	if cfg.AV != nil && !c.IsSet("av") {
		*av = *cfg.AV
	}
}

// applyServeConfig applies serve-command defaults.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
