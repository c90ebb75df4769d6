// Package config reads and writes the interpreter's YAML settings file.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/golox/interp"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/golox", "config")

const FileName = ".golox.yaml"

type Config struct {
	Prompt       string `yaml:"prompt"`
	History      string `yaml:"history"`
	LogLevel     string `yaml:"log_level"`
	MaxCallDepth int    `yaml:"max_call_depth"`
}

func Default() Config {
	return Config{
		Prompt:       "> ",
		History:      "~/.golox_history",
		LogLevel:     "WARNING",
		MaxCallDepth: interp.DefaultMaxDepth,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		plog.Debugf("no settings at %s, using defaults", path)
		return cfg, nil
	} else if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), tracerr.Errorf("reading %s: %v", path, err)
	}
	return cfg, nil
}

func Write(path string, cfg Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}

	if err := ioutil.WriteFile(path, out, 0644); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// Locate picks the settings file: explicit wins, then ./.golox.yaml, then
// $HOME/.golox.yaml. The empty string means none exists.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
