package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

type PingCommand struct {
	stdout io.Writer
	stderr io.Writer
	wiring commandWiring
}

func NewPingCommand(wiring commandWiring) *PingCommand {
	return &PingCommand{stdout: wiring.stdout, stderr: wiring.stderr, wiring: wiring}
}

func (c *PingCommand) Run(args []string) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := connect(c.wiring)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	health, err := client.Health(ctx)
	if err != nil {
		return err
	}
	if health == nil || !health.OK {
		return fmt.Errorf("backend at %s is not healthy", client.BaseURL())
	}
	line := "ok " + client.BaseURL()
	if v := strings.TrimSpace(health.Version); v != "" {
		line += " (" + v + ")"
	}
	fmt.Fprintln(c.stdout, line)
	return nil
}
