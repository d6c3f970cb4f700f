package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"catalogadmin/internal/logging"
	"catalogadmin/internal/sandbox"
	"catalogadmin/internal/store"
)

type sandboxOptions struct {
	Address  string
	DBPath   string
	Seed     int
	Fixtures string
	// Export writes the catalog to this path as a snapshot instead of serving.
	Export  string
	Version string
	Logger  logging.Logger
}

type SandboxCommand struct {
	stderr io.Writer
	wiring commandWiring
}

func NewSandboxCommand(wiring commandWiring) *SandboxCommand {
	return &SandboxCommand{stderr: wiring.stderr, wiring: wiring}
}

func (c *SandboxCommand) Run(args []string) error {
	cfg, logger, err := setup(c.wiring)
	if err != nil {
		return err
	}
	dbPath, err := cfg.ResolveSandboxDBPath()
	if err != nil {
		return err
	}
	fixtures, err := cfg.ResolveSandboxFixtures()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	addr := fs.String("addr", cfg.SandboxAddress(), "listen address")
	db := fs.String("db", dbPath, "bbolt database path")
	seed := fs.Int("seed", cfg.SandboxSeed(), "products to generate into an empty catalog")
	fixturesPath := fs.String("fixtures", fixtures, "JSON snapshot to load into an empty catalog")
	export := fs.String("export", "", "write the catalog as a JSON snapshot to this path and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seed < 0 {
		return fmt.Errorf("seed must not be negative, got %d", *seed)
	}

	ctx, cancel := signalContext()
	defer cancel()
	return c.wiring.runSandbox(ctx, sandboxOptions{
		Address:  *addr,
		DBPath:   *db,
		Seed:     *seed,
		Fixtures: *fixturesPath,
		Export:   *export,
		Version:  c.wiring.version,
		Logger:   logger.With(logging.F("component", "sandbox")),
	})
}

func runSandboxServer(ctx context.Context, opts sandboxOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	repo, err := store.NewBboltRepository(opts.DBPath)
	if err != nil {
		return fmt.Errorf("open sandbox db: %w", err)
	}
	defer repo.Close()

	if opts.Export != "" {
		snap, err := store.Export(ctx, repo.Catalog())
		if err != nil {
			return err
		}
		if err := store.WriteSnapshot(opts.Export, snap); err != nil {
			return err
		}
		logger.Info("sandbox_exported", logging.F("path", opts.Export), logging.F("products", len(snap.Products)))
		return nil
	}

	if err := sandbox.Prepare(ctx, repo, opts.Fixtures, opts.Seed, logger); err != nil {
		return err
	}
	logger.Info("sandbox_listening", logging.F("addr", opts.Address), logging.F("db", opts.DBPath), logging.F("backend", repo.Backend()))
	return sandbox.New(opts.Address, opts.Version, repo, logger).Run(ctx)
}
