// Package iofs prepares the file system layout of gnweather: config,
// data and log directories and the default configuration file.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnsys"
	"github.com/gnames/gnweather/pkg/config"
)

// ConfigYAML is the template of a new configuration file.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, data and log directories if they
// do not exist.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the configuration template unless a config
// file already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
