package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"catalogadmin/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
	wiring commandWiring
}

func NewConfigCommand(wiring commandWiring) *ConfigCommand {
	return &ConfigCommand{stdout: wiring.stdout, stderr: wiring.stderr, wiring: wiring}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatTOML, "output format: toml|json")
	showPath := fs.Bool("path", false, "print the config file path and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	if *showPath {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, path)
		return nil
	}

	cfg := config.Default()
	if !*defaults {
		cfg, err = c.wiring.loadConfig()
		if err != nil {
			return err
		}
	}
	switch resolvedFormat {
	case configFormatJSON:
		return writeJSON(c.stdout, cfg)
	default:
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(data)
		return err
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatTOML:
		return configFormatTOML, nil
	case configFormatJSON:
		return configFormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want toml or json)", raw)
	}
}
