package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultSandboxAddress = "127.0.0.1:7780"
	defaultSandboxDBPath  = "sandbox.db"
	defaultSandboxSeed    = 120

	// EnvAPIURL overrides api.base_url when set.
	EnvAPIURL = "CATALOGADMIN_API_URL"
)

type Config struct {
	API     APIConfig     `toml:"api" json:"api"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Sandbox SandboxConfig `toml:"sandbox" json:"sandbox"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url" json:"base_url"`
	PerPage int    `toml:"per_page" json:"per_page"`
	Timeout string `toml:"timeout" json:"timeout"`
}

type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
}

type UIConfig struct {
	PersistScroll bool `toml:"persist_scroll" json:"persist_scroll"`
}

type SandboxConfig struct {
	Address string `toml:"address" json:"address"`
	DBPath  string `toml:"db_path" json:"db_path"`
	Seed    int    `toml:"seed" json:"seed"`
	// Fixtures is a JSON catalog snapshot loaded into an empty database
	// instead of generated seed data.
	Fixtures string `toml:"fixtures,omitempty" json:"fixtures,omitempty"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://" + defaultSandboxAddress,
			Timeout: "0s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Sandbox: SandboxConfig{
			Address: defaultSandboxAddress,
			DBPath:  defaultSandboxDBPath,
			Seed:    defaultSandboxSeed,
		},
	}
}

// Load reads the config file from the data directory, overlaying it on the
// defaults. A missing or empty file yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	if override := strings.TrimSpace(os.Getenv(EnvAPIURL)); override != "" {
		cfg.API.BaseURL = override
	}
	return cfg, nil
}

// Encode renders the config as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c Config) APIBaseURL() string {
	raw := strings.TrimSpace(c.API.BaseURL)
	if raw == "" {
		raw = "http://" + defaultSandboxAddress
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}

func (c Config) PerPage() int {
	if c.API.PerPage < 0 {
		return 0
	}
	return c.API.PerPage
}

// RequestTimeout returns the HTTP client timeout; zero means none.
func (c Config) RequestTimeout() time.Duration {
	raw := strings.TrimSpace(c.API.Timeout)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) SandboxAddress() string {
	addr := strings.TrimSpace(c.Sandbox.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultSandboxAddress
	}
	return addr
}

func (c Config) SandboxSeed() int {
	if c.Sandbox.Seed < 0 {
		return 0
	}
	return c.Sandbox.Seed
}

// ResolveSandboxDBPath resolves db_path against the data directory unless it
// is absolute or home-relative.
func (c Config) ResolveSandboxDBPath() (string, error) {
	path := strings.TrimSpace(c.Sandbox.DBPath)
	if path == "" {
		path = defaultSandboxDBPath
	}
	return resolveConfigPath(path)
}

// ResolveSandboxFixtures returns the fixtures path, or "" when unset.
func (c Config) ResolveSandboxFixtures() (string, error) {
	path := strings.TrimSpace(c.Sandbox.Fixtures)
	if path == "" {
		return "", nil
	}
	return resolveConfigPath(path)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
