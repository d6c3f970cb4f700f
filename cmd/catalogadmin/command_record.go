package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"catalogadmin/internal/validate"
)

type GetCommand struct {
	stdout io.Writer
	stderr io.Writer
	wiring commandWiring
}

func NewGetCommand(wiring commandWiring) *GetCommand {
	return &GetCommand{stdout: wiring.stdout, stderr: wiring.stderr, wiring: wiring}
}

func (c *GetCommand) Run(args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	res, id, err := resourceArg(fs.Args(), true)
	if err != nil {
		return err
	}
	client, err := connect(c.wiring)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	record, err := client.GetRecord(ctx, res, id)
	if err != nil {
		return err
	}
	return writeJSON(c.stdout, record)
}

type DeleteCommand struct {
	stdout io.Writer
	stderr io.Writer
	wiring commandWiring
}

func NewDeleteCommand(wiring commandWiring) *DeleteCommand {
	return &DeleteCommand{stdout: wiring.stdout, stderr: wiring.stderr, wiring: wiring}
}

func (c *DeleteCommand) Run(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	res, id, err := resourceArg(fs.Args(), true)
	if err != nil {
		return err
	}
	client, err := connect(c.wiring)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	if err := client.DeleteRecord(ctx, res, id); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "ok")
	return nil
}

// SaveCommand backs both create and update. Fields are validated locally
// before anything is sent.
type SaveCommand struct {
	stdout io.Writer
	stderr io.Writer
	wiring commandWiring
	update bool
}

func NewSaveCommand(wiring commandWiring, update bool) *SaveCommand {
	return &SaveCommand{stdout: wiring.stdout, stderr: wiring.stderr, wiring: wiring, update: update}
}

func (c *SaveCommand) Run(args []string) error {
	name := "create"
	if c.update {
		name = "update"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var sets stringList
	fs.Var(&sets, "set", "field as key=value (repeatable)")
	positional := leadingArgs(args, 2)
	if err := fs.Parse(args[len(positional):]); err != nil {
		return err
	}
	positional = append(positional, fs.Args()...)
	res, id, err := resourceArg(positional, c.update)
	if err != nil {
		return err
	}
	values, err := keyValues(sets)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return errors.New("at least one --set key=value is required")
	}

	client, err := connect(c.wiring)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	var record any
	if c.update {
		record, err = client.GetRecord(ctx, res, id)
	} else {
		record, err = validate.NewRecord(res)
	}
	if err != nil {
		return err
	}
	if err := validate.Assign(record, values); err != nil {
		return err
	}
	if err := validate.Record(record); err != nil {
		return err
	}
	saved, err := client.SaveRecord(ctx, res, id, record)
	if err != nil {
		return err
	}
	return writeJSON(c.stdout, saved)
}

// leadingArgs returns up to n arguments before the first flag, so the
// resource and id may precede --set flags.
func leadingArgs(args []string, n int) []string {
	var out []string
	for _, arg := range args {
		if len(out) == n || len(arg) > 0 && arg[0] == '-' {
			break
		}
		out = append(out, arg)
	}
	return out
}
