package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"

	humanize "github.com/dustin/go-humanize"

	"catalogadmin/internal/filter"
	"catalogadmin/internal/types"
)

type ListCommand struct {
	stdout io.Writer
	stderr io.Writer
	wiring commandWiring
}

type listOutput struct {
	Data []any          `json:"data"`
	Meta types.PageMeta `json:"meta"`
}

func NewListCommand(wiring commandWiring) *ListCommand {
	return &ListCommand{
		stdout: wiring.stdout,
		stderr: wiring.stderr,
		wiring: wiring,
	}
}

func (c *ListCommand) Run(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	page := fs.Int("page", 1, "page to print")
	all := fs.Bool("all", false, "follow pages until the last one")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	var filters stringList
	fs.Var(&filters, "filter", "filter as key=value (repeatable)")
	positional := leadingArgs(args, 1)
	if err := fs.Parse(args[len(positional):]); err != nil {
		return err
	}
	res, _, err := resourceArg(append(positional, fs.Args()...), false)
	if err != nil {
		return err
	}
	if *page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", *page)
	}
	query, err := filterQuery(res, filters)
	if err != nil {
		return err
	}

	client, err := connect(c.wiring)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	records, meta, err := collectPages(ctx, client, res, *page, *all, query)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(c.stdout, listOutput{Data: records, Meta: meta})
	}
	printRecords(c.stdout, res, records)
	fmt.Fprintf(c.stdout, "%s of %s %s · page %d/%d\n",
		humanize.Comma(int64(len(records))),
		humanize.Comma(int64(meta.TotalDataCount)),
		res.Name, meta.CurrentPage, meta.TotalPages)
	return nil
}

// collectPages fetches page, and with all set every page after it. Records
// already seen are skipped so a shifting backend cannot print duplicates.
func collectPages(ctx context.Context, client commandClient, res types.Resource, page int, all bool, query url.Values) ([]any, types.PageMeta, error) {
	var out []any
	seen := map[types.ID]bool{}
	for {
		records, meta, err := client.ListPage(ctx, res, page, query)
		if err != nil {
			return nil, types.PageMeta{}, err
		}
		meta = meta.Normalize()
		for _, record := range records {
			if item, ok := record.(interface{ ItemID() types.ID }); ok {
				if seen[item.ItemID()] {
					continue
				}
				seen[item.ItemID()] = true
			}
			out = append(out, record)
		}
		if !all || !meta.HasMore() {
			return out, meta, nil
		}
		page = meta.CurrentPage + 1
	}
}

// filterQuery turns --filter flags into query parameters, accepting only the
// keys the resource's filter bar offers.
func filterQuery(res types.Resource, raw []string) (url.Values, error) {
	pairs, err := keyValues(raw)
	if err != nil {
		return nil, err
	}
	state := filter.EmptyFor(res)
	for key, value := range pairs {
		if _, ok := state[key]; !ok {
			return nil, fmt.Errorf("%s cannot be filtered by %q", res.Name, key)
		}
		state[key] = value
	}
	return state.Query(), nil
}
