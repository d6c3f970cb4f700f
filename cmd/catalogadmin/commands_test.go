package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"catalogadmin/internal/app"
	catalogclient "catalogadmin/internal/client"
	"catalogadmin/internal/config"
	"catalogadmin/internal/logging"
	"catalogadmin/internal/sandbox"
	"catalogadmin/internal/store"
	"catalogadmin/internal/types"
)

type listRequest struct {
	res   string
	page  int
	query string
}

type fakeCommandClient struct {
	pages    map[int][]any
	meta     func(page int) types.PageMeta
	requests []listRequest
	record   any
	saved    []any
	savedIDs []types.ID
	deleted  []types.ID
	health   *catalogclient.HealthResponse
	err      error
}

func (f *fakeCommandClient) Health(context.Context) (*catalogclient.HealthResponse, error) {
	return f.health, f.err
}

func (f *fakeCommandClient) ListPage(_ context.Context, res types.Resource, page int, query url.Values) ([]any, types.PageMeta, error) {
	f.requests = append(f.requests, listRequest{res: res.Name, page: page, query: query.Encode()})
	if f.err != nil {
		return nil, types.PageMeta{}, f.err
	}
	return f.pages[page], f.meta(page), nil
}

func (f *fakeCommandClient) GetRecord(context.Context, types.Resource, types.ID) (any, error) {
	return f.record, f.err
}

func (f *fakeCommandClient) SaveRecord(_ context.Context, _ types.Resource, id types.ID, record any) (any, error) {
	f.saved = append(f.saved, record)
	f.savedIDs = append(f.savedIDs, id)
	return record, f.err
}

func (f *fakeCommandClient) DeleteRecord(_ context.Context, _ types.Resource, id types.ID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeCommandClient) BaseURL() string { return "http://catalog.test" }

func testWiring(stdout *bytes.Buffer, fake *fakeCommandClient) commandWiring {
	return commandWiring{
		stdout:     stdout,
		stderr:     &bytes.Buffer{},
		loadConfig: func() (config.Config, error) { return config.Default(), nil },
		newClient: func(config.Config, logging.Logger) (commandClient, error) {
			return fake, nil
		},
		runUI:      func(context.Context, app.Options) error { return nil },
		runSandbox: func(context.Context, sandboxOptions) error { return nil },
		version:    "test",
	}
}

func productPages() *fakeCommandClient {
	return &fakeCommandClient{
		pages: map[int][]any{
			1: {&types.Product{ID: "1", Name: "Steel Mug", SKU: "STE-MUG-0001", Price: "9.50", Currency: "EUR", Active: true}},
			2: {
				&types.Product{ID: "1", Name: "Steel Mug", SKU: "STE-MUG-0001", Price: "9.50", Currency: "EUR", Active: true},
				&types.Product{ID: "2", Name: "Steel Lamp", SKU: "STE-LAM-0002", Price: "49.00", Currency: "EUR"},
			},
		},
		meta: func(page int) types.PageMeta {
			return types.PageMeta{CurrentPage: page, TotalPages: 2, TotalDataCount: 2}
		},
	}
}

func TestListCommandPrintsTableWithFilters(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := productPages()
	cmd := NewListCommand(testWiring(stdout, fake))

	if err := cmd.Run([]string{"products", "--filter", "starts_with=steel", "--filter", "active=active"}); err != nil {
		t.Fatalf("expected list to succeed, got err=%v", err)
	}
	if len(fake.requests) != 1 {
		t.Fatalf("expected one request, got %#v", fake.requests)
	}
	req := fake.requests[0]
	if req.res != "products" || req.page != 1 || req.query != "active=active&starts_with=steel" {
		t.Fatalf("unexpected request %#v", req)
	}
	out := stdout.String()
	if !strings.Contains(out, "SKU") || !strings.Contains(out, "Steel Mug") || !strings.Contains(out, "9.50 EUR") {
		t.Fatalf("expected product table, got %q", out)
	}
	if !strings.Contains(out, "1 of 2 products · page 1/2") {
		t.Fatalf("expected summary line, got %q", out)
	}
}

func TestListCommandAllFollowsPagesWithoutDuplicates(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := productPages()
	cmd := NewListCommand(testWiring(stdout, fake))

	if err := cmd.Run([]string{"products", "--all", "--json"}); err != nil {
		t.Fatalf("expected list to succeed, got err=%v", err)
	}
	if len(fake.requests) != 2 {
		t.Fatalf("expected two page requests, got %#v", fake.requests)
	}
	var decoded struct {
		Data []map[string]any `json:"data"`
		Meta types.PageMeta   `json:"meta"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Data) != 2 || decoded.Meta.CurrentPage != 2 {
		t.Fatalf("unexpected output %+v", decoded)
	}
}

func TestListCommandRejectsUnknownFilter(t *testing.T) {
	fake := productPages()
	cmd := NewListCommand(testWiring(&bytes.Buffer{}, fake))
	err := cmd.Run([]string{"vendor-skus", "--filter", "price=1"})
	if err == nil || !strings.Contains(err.Error(), "cannot be filtered") {
		t.Fatalf("expected filter error, got %v", err)
	}
	if len(fake.requests) != 0 {
		t.Fatalf("expected no request")
	}
}

func TestUpdateCommandValidatesBeforeSending(t *testing.T) {
	fake := &fakeCommandClient{record: &types.Product{ID: "7", Name: "Oak Bowl", SKU: "OAK-BOW-0007", Price: "12.00"}}
	cmd := NewSaveCommand(testWiring(&bytes.Buffer{}, fake), true)

	err := cmd.Run([]string{"products", "7", "--set", "price=-3"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if len(fake.saved) != 0 {
		t.Fatalf("invalid record must not be sent")
	}

	stdout := &bytes.Buffer{}
	cmd = NewSaveCommand(testWiring(stdout, fake), true)
	if err := cmd.Run([]string{"products", "7", "--set", "price=14.50", "--set", "active=false"}); err != nil {
		t.Fatalf("expected update to succeed, got err=%v", err)
	}
	if len(fake.saved) != 1 || fake.savedIDs[0] != "7" {
		t.Fatalf("expected update of #7, got %#v", fake.savedIDs)
	}
	saved := fake.saved[0].(*types.Product)
	if saved.Price != "14.50" || saved.Active || saved.Name != "Oak Bowl" {
		t.Fatalf("unexpected saved record %+v", saved)
	}
	if !strings.Contains(stdout.String(), `"price": "14.50"`) {
		t.Fatalf("expected saved record JSON, got %q", stdout.String())
	}
}

func TestCreateCommandRequiresFields(t *testing.T) {
	fake := &fakeCommandClient{}
	cmd := NewSaveCommand(testWiring(&bytes.Buffer{}, fake), false)
	if err := cmd.Run([]string{"collections"}); err == nil {
		t.Fatalf("expected error without --set")
	}
	if err := cmd.Run([]string{"collections", "--set", "name=Kitchen"}); err != nil {
		t.Fatalf("expected create to succeed, got err=%v", err)
	}
	if len(fake.saved) != 1 || !fake.savedIDs[0].IsZero() {
		t.Fatalf("expected one create, got %#v", fake.savedIDs)
	}
}

func TestDeleteCommandWritesOK(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{}
	cmd := NewDeleteCommand(testWiring(stdout, fake))
	if err := cmd.Run([]string{"categories", "3"}); err != nil {
		t.Fatalf("expected delete to succeed, got err=%v", err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != "3" || stdout.String() != "ok\n" {
		t.Fatalf("unexpected delete result %#v %q", fake.deleted, stdout.String())
	}
	if err := cmd.Run([]string{"categories"}); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestPingCommand(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{health: &catalogclient.HealthResponse{OK: true, Version: "v1"}}
	if err := NewPingCommand(testWiring(stdout, fake)).Run(nil); err != nil {
		t.Fatalf("expected ping to succeed, got err=%v", err)
	}
	if got := stdout.String(); got != "ok http://catalog.test (v1)\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}

	fake.err = errors.New("connection refused")
	if err := NewPingCommand(testWiring(&bytes.Buffer{}, fake)).Run(nil); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestConfigCommandPrintsDefaults(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(testWiring(stdout, &fakeCommandClient{}))
	if err := cmd.Run([]string{"--default", "--format", "json"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(stdout.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Sandbox.Seed != config.Default().Sandbox.Seed || cfg.API.BaseURL == "" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	stdout.Reset()
	if err := cmd.Run([]string{"--format", "toml"}); err != nil {
		t.Fatalf("expected toml config to succeed, got err=%v", err)
	}
	if !strings.Contains(stdout.String(), "[sandbox]") {
		t.Fatalf("expected toml sections, got %q", stdout.String())
	}
	if err := cmd.Run([]string{"--format", "yaml"}); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestUICommandPassesOptions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var got app.Options
	wiring := testWiring(&bytes.Buffer{}, &fakeCommandClient{})
	wiring.runUI = func(_ context.Context, opts app.Options) error {
		got = opts
		return nil
	}
	if err := NewUICommand(wiring).Run([]string{"--resource", "products", "--persist-scroll"}); err != nil {
		t.Fatalf("expected ui to succeed, got err=%v", err)
	}
	if got.API == nil || got.Marks == nil || got.Version != "test" {
		t.Fatalf("unexpected options %+v", got)
	}
	if len(got.Resources) != 4 || got.Resources[0].Name != "products" || got.Resources[3].Name != "categories" {
		t.Fatalf("unexpected resource order %+v", got.Resources)
	}
}

func TestSandboxCommandUsesConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var got sandboxOptions
	wiring := testWiring(&bytes.Buffer{}, &fakeCommandClient{})
	wiring.runSandbox = func(_ context.Context, opts sandboxOptions) error {
		got = opts
		return nil
	}
	if err := NewSandboxCommand(wiring).Run([]string{"--seed", "5"}); err != nil {
		t.Fatalf("expected sandbox to succeed, got err=%v", err)
	}
	if got.Address != "127.0.0.1:7780" || got.Seed != 5 || !strings.HasSuffix(got.DBPath, "sandbox.db") {
		t.Fatalf("unexpected sandbox options %+v", got)
	}
	if err := NewSandboxCommand(wiring).Run([]string{"--seed", "-1"}); err == nil {
		t.Fatalf("expected negative seed error")
	}
}

func TestSandboxExportWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	repo, err := store.NewBboltRepository(dir + "/sandbox.db")
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	if err := sandbox.Prepare(ctx, repo, "", 6, nil); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	exportPath := dir + "/snapshot.json"
	if err := runSandboxServer(ctx, sandboxOptions{DBPath: dir + "/sandbox.db", Export: exportPath}); err != nil {
		t.Fatalf("export: %v", err)
	}
	snap, err := store.ReadSnapshot(exportPath)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(snap.Products) != 6 {
		t.Fatalf("expected 6 products, got %d", len(snap.Products))
	}
}

func TestListCommandAgainstSandbox(t *testing.T) {
	ctx := context.Background()
	repo, err := store.NewBboltRepository(t.TempDir() + "/sandbox.db")
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := sandbox.Prepare(ctx, repo, "", 45, nil); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	server := httptest.NewServer(sandbox.New("", "test", repo, nil).Handler())
	t.Cleanup(server.Close)

	stdout := &bytes.Buffer{}
	wiring := defaultCommandWiring(stdout, &bytes.Buffer{})
	wiring.loadConfig = func() (config.Config, error) {
		cfg := config.Default()
		cfg.API.BaseURL = server.URL
		cfg.Logging.Level = "error"
		return cfg, nil
	}
	if err := NewListCommand(wiring).Run([]string{"products", "--all", "--json"}); err != nil {
		t.Fatalf("expected list to succeed, got err=%v", err)
	}
	var decoded struct {
		Data []types.Product `json:"data"`
		Meta types.PageMeta  `json:"meta"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Data) != 45 || decoded.Meta.TotalDataCount != 45 || decoded.Meta.TotalPages != 3 {
		t.Fatalf("unexpected listing: %d items, meta %+v", len(decoded.Data), decoded.Meta)
	}
}
