package main

import (
	"flag"
	"fmt"
	"io"

	"catalogadmin/internal/app"
	"catalogadmin/internal/config"
	"catalogadmin/internal/logging"
	"catalogadmin/internal/scrollmark"
	"catalogadmin/internal/types"
)

type UICommand struct {
	stderr io.Writer
	wiring commandWiring
}

func NewUICommand(wiring commandWiring) *UICommand {
	return &UICommand{stderr: wiring.stderr, wiring: wiring}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	persist := fs.Bool("persist-scroll", false, "keep scroll positions across runs (overrides ui.persist_scroll)")
	start := fs.String("resource", "", "resource tab to open first")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := c.wiring.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	resources, err := orderResources(*start)
	if err != nil {
		return err
	}

	// bubbletea owns stdout, so the UI only ever logs to a file.
	logger := logging.Nop()
	if logPath, err := config.UILogPath(); err == nil {
		fileLogger, closer, err := logging.OpenFile(logPath, logging.ParseLevel(cfg.LogLevel()))
		if err == nil {
			defer closer.Close()
			logger = fileLogger
		}
	}

	var marks scrollmark.Store
	if *persist || cfg.UI.PersistScroll {
		path, err := config.ScrollMarksPath()
		if err != nil {
			return err
		}
		bolt, err := scrollmark.OpenBoltStore(path, logger)
		if err != nil {
			return fmt.Errorf("open scroll marks: %w", err)
		}
		defer bolt.Close()
		marks = bolt
	}

	ctx, cancel := signalContext()
	defer cancel()
	logger.Info("ui_started", logging.F("api", cfg.APIBaseURL()), logging.F("version", c.wiring.version))
	return c.wiring.runUI(ctx, app.Options{
		API:       app.NewClientAPI(newHTTPClient(cfg, logger)),
		Marks:     marks,
		Logger:    logger,
		Resources: resources,
		Version:   c.wiring.version,
	})
}

// orderResources rotates the tab order so start comes first.
func orderResources(start string) ([]types.Resource, error) {
	all := types.Resources()
	if start == "" {
		return all, nil
	}
	res, err := types.LookupResource(start)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == res.Name {
			return append(all[i:], all[:i]...), nil
		}
	}
	return all, nil
}
