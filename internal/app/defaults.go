package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths are the locations sislog uses before a config file is read.
type Paths struct {
	ConfigFile string
	BaseDir    string
	LogDir     string
}

// DefaultPaths resolves Paths from the environment. In order of precedence:
//
//	config file: $SISLOG_CONFIG_PATH, $XDG_CONFIG_HOME/sislog.toml, ~/.config/sislog.toml
//	base dir:    $SISLOG_HOME, $XDG_DATA_HOME/sislog, ~/.local/share/sislog
func DefaultPaths() (Paths, error) {
	cfgFile, err := resolve("SISLOG_CONFIG_PATH", "XDG_CONFIG_HOME", "sislog.toml", ".config")
	if err != nil {
		return Paths{}, err
	}
	base, err := resolve("SISLOG_HOME", "XDG_DATA_HOME", "sislog", ".local", "share")
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		ConfigFile: cfgFile,
		BaseDir:    base,
		LogDir:     filepath.Join(base, "log"),
	}, nil
}

func resolve(override, xdg, name string, homeRel ...string) (string, error) {
	if p := os.Getenv(override); p != "" {
		return p, nil
	}
	if dir := os.Getenv(xdg); dir != "" {
		return filepath.Join(dir, name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append(append([]string{home}, homeRel...), name)...), nil
}
