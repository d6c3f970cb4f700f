package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"catalogadmin/internal/config"
	"catalogadmin/internal/logging"
	"catalogadmin/internal/types"
)

const (
	version = "dev"

	tableCellWidth = 40
)

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// keyValues parses repeated key=value flags. Later keys win.
func keyValues(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, pair := range raw {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

// setup loads the config and a stderr logger at the configured level.
func setup(wiring commandWiring) (config.Config, logging.Logger, error) {
	cfg, err := wiring.loadConfig()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logging.New(wiring.stderr, logging.ParseLevel(cfg.LogLevel())), nil
}

func connect(wiring commandWiring) (commandClient, error) {
	cfg, logger, err := setup(wiring)
	if err != nil {
		return nil, err
	}
	return wiring.newClient(cfg, logger)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func resourceArg(args []string, needID bool) (types.Resource, types.ID, error) {
	if len(args) < 1 {
		return types.Resource{}, "", errors.New("resource is required")
	}
	res, err := types.LookupResource(args[0])
	if err != nil {
		return types.Resource{}, "", err
	}
	if !needID {
		return res, "", nil
	}
	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		return types.Resource{}, "", fmt.Errorf("%s id is required", res.Singular)
	}
	return res, types.ID(strings.TrimSpace(args[1])), nil
}

func writeJSON(out io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// printRecords writes records as an aligned table. Cells are cut to a fixed
// display width so wide runes do not break the columns.
func printRecords(output io.Writer, res types.Resource, records []any) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(recordHeader(res), "\t"))
	for _, record := range records {
		cells := recordRow(record)
		for i, cell := range cells {
			cells[i] = runewidth.Truncate(strings.Join(strings.Fields(cell), " "), tableCellWidth, "…")
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	_ = writer.Flush()
}

func recordHeader(res types.Resource) []string {
	switch res.Name {
	case types.ResourceCollections.Name:
		return []string{"ID", "NAME", "STATUS", "POSITION", "UPDATED"}
	case types.ResourceCategories.Name:
		return []string{"ID", "NAME", "COLLECTION", "STATUS", "UPDATED"}
	case types.ResourceProducts.Name:
		return []string{"ID", "NAME", "SKU", "PRICE", "STATUS", "UPDATED"}
	case types.ResourceVendorSKUs.Name:
		return []string{"ID", "VENDOR", "VENDOR SKU", "PRODUCT", "STATUS", "UPDATED"}
	default:
		return []string{"ID"}
	}
}

func recordRow(record any) []string {
	switch r := record.(type) {
	case *types.Collection:
		return []string{r.ID.String(), r.Name, status(r.Active), fmt.Sprint(r.Position), updated(r.UpdatedAt)}
	case *types.Category:
		return []string{r.ID.String(), r.Name, r.CollectionID.String(), status(r.Active), updated(r.UpdatedAt)}
	case *types.Product:
		price := r.Price.String()
		if r.Currency != "" {
			price += " " + r.Currency
		}
		return []string{r.ID.String(), r.Name, r.SKU, price, status(r.Active), updated(r.UpdatedAt)}
	case *types.VendorSKU:
		return []string{r.ID.String(), r.Vendor, r.VendorSKU, r.ProductID.String(), status(r.Active), updated(r.UpdatedAt)}
	default:
		return []string{fmt.Sprint(record)}
	}
}

func status(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func updated(at *time.Time) string {
	if at == nil || at.IsZero() {
		return "-"
	}
	return humanize.Time(*at)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
