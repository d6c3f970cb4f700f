package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"catalogadmin/internal/types"
)

func openRepo(t *testing.T) Repository {
	t.Helper()
	repo, err := NewBboltRepository(filepath.Join(t.TempDir(), "sandbox.db"))
	if err != nil {
		t.Fatalf("NewBboltRepository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCatalogStoreCRUD(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	catalog := repo.Catalog()
	if repo.Backend() != RepositoryBackendBbolt {
		t.Fatalf("unexpected backend %q", repo.Backend())
	}

	for _, name := range []string{"Kitchen", "Garden", "Office"} {
		_, err := catalog.Insert(ctx, types.ResourceCollections, func(id types.ID) (any, error) {
			return &types.Collection{ID: id, Name: name, Active: true}, nil
		})
		if err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}
	count, err := catalog.Count(ctx, types.ResourceCollections)
	if err != nil || count != 3 {
		t.Fatalf("expected 3 collections, got %d err=%v", count, err)
	}

	got, err := GetRecord[types.Collection](ctx, catalog, types.ResourceCollections, "2")
	if err != nil || got.Name != "Garden" || got.ID != "2" {
		t.Fatalf("unexpected record %+v err=%v", got, err)
	}

	_, err = catalog.Replace(ctx, types.ResourceCollections, "2", func(current []byte) (any, error) {
		var c types.Collection
		if err := json.Unmarshal(current, &c); err != nil {
			return nil, err
		}
		c.Name = "Garden & Patio"
		return &c, nil
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	list, err := ListRecords(ctx, catalog, types.ResourceCollections, func(c *types.Collection) bool {
		return c.Name != "Office"
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Kitchen" || list[1].Name != "Garden & Patio" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := catalog.Delete(ctx, types.ResourceCollections, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := catalog.Get(ctx, types.ResourceCollections, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := catalog.Delete(ctx, types.ResourceCollections, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if _, err := catalog.Get(ctx, types.ResourceCollections, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for non-numeric id, got %v", err)
	}
}

func TestCatalogIDsKeepNumericOrder(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	catalog := repo.Catalog()
	for i := 0; i < 12; i++ {
		if _, err := catalog.Insert(ctx, types.ResourceProducts, func(id types.ID) (any, error) {
			return &types.Product{ID: id, Name: "p" + id.String()}, nil
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	list, err := ListRecords[types.Product](ctx, catalog, types.ResourceProducts, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[1].ID != "2" || list[9].ID != "10" || list[11].ID != "12" {
		t.Fatalf("expected numeric order, got %s %s %s", list[1].ID, list[9].ID, list[11].ID)
	}
}

func TestSnapshotRoundTripKeepsIDs(t *testing.T) {
	src := openRepo(t)
	ctx := context.Background()
	if err := src.Catalog().Restore(ctx, types.ResourceCategories, "7", &types.Category{ID: "7", Name: "Mugs", CollectionID: "3"}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	snap, err := Export(ctx, src.Catalog())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fixtures.json")
	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	dst := openRepo(t)
	if err := Import(ctx, dst.Catalog(), loaded); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := GetRecord[types.Category](ctx, dst.Catalog(), types.ResourceCategories, "7")
	if err != nil || got.Name != "Mugs" || got.CollectionID != "3" {
		t.Fatalf("unexpected imported record %+v err=%v", got, err)
	}
	raw, err := dst.Catalog().Insert(ctx, types.ResourceCategories, func(id types.ID) (any, error) {
		return &types.Category{ID: id, Name: "Plates"}, nil
	})
	if err != nil {
		t.Fatalf("insert after import: %v", err)
	}
	var next types.Category
	_ = json.Unmarshal(raw, &next)
	if next.ID != "8" {
		t.Fatalf("expected sequence to continue after restored id, got %s", next.ID)
	}
}

func TestNewBboltRepositoryRequiresPath(t *testing.T) {
	if _, err := NewBboltRepository(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
