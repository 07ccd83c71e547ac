package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings an optional aang.toml in the working
// directory supplies; CLI flags set after loading always override it.
type Config struct {
	Output     string `toml:"output"`
	ReportPath string `toml:"report_path"`
	KeepTree   bool   `toml:"keep_tree"`
}

// loadConfig reads aang.toml from the working directory if present,
// returning a zero Config (not an error) when the file is absent.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
