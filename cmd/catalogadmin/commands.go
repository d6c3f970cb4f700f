package main

import (
	"context"
	"io"
	"os"

	"catalogadmin/internal/app"
	"catalogadmin/internal/config"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	newClient  clientFactory
	runUI      func(ctx context.Context, opts app.Options) error
	runSandbox func(ctx context.Context, opts sandboxOptions) error
	version    string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.Load,
		newClient:  newCatalogClient,
		runUI:      app.Run,
		runSandbox: runSandboxServer,
		version:    buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":      NewUICommand(wiring),
		"list":    NewListCommand(wiring),
		"get":     NewGetCommand(wiring),
		"create":  NewSaveCommand(wiring, false),
		"update":  NewSaveCommand(wiring, true),
		"delete":  NewDeleteCommand(wiring),
		"ping":    NewPingCommand(wiring),
		"config":  NewConfigCommand(wiring),
		"sandbox": NewSandboxCommand(wiring),
	}
}
