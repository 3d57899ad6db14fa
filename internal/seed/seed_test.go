package seed

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/migrations"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/store"
)

func newSeedTestStore(t *testing.T) *store.Store {
	t.Helper()

	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return store.New(database, nil)
}

func TestRunSeedsDemoCatalogOnce(t *testing.T) {
	s := newSeedTestStore(t)

	stats, err := Run(s, "Demo Kitchen")
	if err != nil {
		t.Fatalf("seed run: %v", err)
	}
	if stats.Inserts == 0 {
		t.Fatal("expected demo catalog inserts on a fresh database")
	}

	items, err := s.ListPricedItems(DefaultBusinessID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded priced items")
	}
	recipes, err := s.ListRecipes(DefaultBusinessID)
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 seeded recipes, got %d", len(recipes))
	}

	settings, err := s.Settings(DefaultBusinessID)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.WorkingDaysPerMonth != 22 || settings.HoursPerDay != 8 {
		t.Fatalf("unexpected default settings: %+v", settings)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	s := newSeedTestStore(t)

	if _, err := Run(s, "Demo Kitchen"); err != nil {
		t.Fatalf("first seed run: %v", err)
	}
	stats, err := Run(s, "Demo Kitchen")
	if err != nil {
		t.Fatalf("second seed run: %v", err)
	}
	if stats.Inserts != 0 {
		t.Fatalf("second run must not insert, got %d inserts", stats.Inserts)
	}

	items, err := s.ListPricedItems(DefaultBusinessID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected demo catalog to stay single, got %d items", len(items))
	}
}
