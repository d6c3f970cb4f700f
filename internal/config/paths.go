package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".catalogadmin"

// DataDir returns the base data directory for catalogadmin.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	return dataFile("config.toml")
}

// UILogPath returns the path the terminal UI writes its log to.
func UILogPath() (string, error) {
	return dataFile("ui.log")
}

// ScrollMarksPath returns the bbolt file holding persisted scroll offsets.
func ScrollMarksPath() (string, error) {
	return dataFile("scroll.db")
}

func dataFile(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
