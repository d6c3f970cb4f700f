package main

import (
	"fmt"
	"os"
)

const usageText = `catalogadmin manages a commerce catalog from the terminal.

Usage:
  catalogadmin <command> [flags]

Commands:
  ui        run the terminal dashboard
  list      print one page (or all pages) of a resource
  get       print one record as JSON
  create    create a record from --set fields
  update    update a record from --set fields
  delete    delete a record
  ping      check the configured backend
  config    print configuration (effective or defaults)
  sandbox   run the local sandbox backend
  help      show help

Resources:
  collections, categories, products, vendor_skus

Flags:
  -h, --help   show help

Examples:
  catalogadmin list products --filter starts_with=steel --filter active=active
  catalogadmin list categories --all --json
  catalogadmin update products 42 --set price=19.90 --set active=false
  catalogadmin config --default --format toml
  catalogadmin sandbox --seed 500
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
