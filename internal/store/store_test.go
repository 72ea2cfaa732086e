package store

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("version = %d, want %d", version, len(migrations))
	}
}

func TestGet_Missing(t *testing.T) {
	store := setupTestStore(t)

	value, ok, err := store.Get(LastLocationKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Get = (%q, %v), want (\"\", false)", value, ok)
	}
}

func TestSetAndGet(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Set(LastLocationKey, "Boston"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(LastLocationKey, "Denver"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	value, ok, err := store.Get(LastLocationKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != "Denver" {
		t.Errorf("Get = (%q, %v), want (Denver, true)", value, ok)
	}

	var rows int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM preferences`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
}

func TestSet_EmptyValueIsStored(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Set("k", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := store.Get("k")
	if err != nil || !ok || value != "" {
		t.Errorf("Get = (%q, %v, %v), want (\"\", true, nil)", value, ok, err)
	}
}

func TestGet_ClosedDatabase(t *testing.T) {
	store := setupTestStore(t)
	store.db.Close()

	if _, _, err := store.Get(LastLocationKey); err == nil {
		t.Error("expected error from closed database")
	}
	if err := store.Set(LastLocationKey, "Boston"); err == nil {
		t.Error("expected error from closed database")
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file-backed database test in short mode")
	}
	path := filepath.Join(t.TempDir(), "weather.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(LastLocationKey, "Seattle"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	value, ok, err := s.Get(LastLocationKey)
	if err != nil || !ok || value != "Seattle" {
		t.Errorf("Get = (%q, %v, %v), want Seattle", value, ok, err)
	}
}

func TestSet_Concurrent(t *testing.T) {
	store := setupTestStore(t)

	var wg sync.WaitGroup
	for _, city := range []string{"Austin", "Boston", "Chicago", "Denver"} {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()
			if err := store.Set(LastLocationKey, city); err != nil {
				t.Errorf("Set(%q): %v", city, err)
			}
		}(city)
	}
	wg.Wait()

	if _, ok, err := store.Get(LastLocationKey); err != nil || !ok {
		t.Errorf("Get after concurrent writes: ok=%v err=%v", ok, err)
	}
}

func TestFetchRuns(t *testing.T) {
	store := setupTestStore(t)

	first, err := store.StartFetchRun("fetch-1", "Boston")
	if err != nil {
		t.Fatalf("StartFetchRun: %v", err)
	}
	first.Success = true
	first.ResolvedCity = sql.NullString{String: "Boston", Valid: true}
	if err := store.CompleteFetchRun(first); err != nil {
		t.Fatalf("CompleteFetchRun: %v", err)
	}

	time.Sleep(time.Millisecond)
	failed, err := store.StartFetchRun("fetch-2", "Atlantis")
	if err != nil {
		t.Fatalf("StartFetchRun: %v", err)
	}
	failed.ErrorKind = sql.NullString{String: "not_found", Valid: true}
	failed.ErrorMessage = sql.NullString{String: "Location not found", Valid: true}
	if err := store.CompleteFetchRun(failed); err != nil {
		t.Fatalf("CompleteFetchRun: %v", err)
	}

	runs, err := store.RecentFetchRuns(10)
	if err != nil {
		t.Fatalf("RecentFetchRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].FetchID != "fetch-2" || runs[0].Success || runs[0].ErrorKind.String != "not_found" {
		t.Errorf("runs[0] = %+v", runs[0])
	}
	if runs[1].FetchID != "fetch-1" || !runs[1].Success || runs[1].ResolvedCity.String != "Boston" {
		t.Errorf("runs[1] = %+v", runs[1])
	}
	if !runs[1].FinishedAt.Valid {
		t.Error("FinishedAt not set")
	}

	health, err := store.GetFetchHealth(1)
	if err != nil {
		t.Fatalf("GetFetchHealth: %v", err)
	}
	if len(health) != 1 || health[0].TotalRuns != 2 || health[0].SuccessRuns != 1 || health[0].FailedRuns != 1 {
		t.Errorf("health = %+v", health)
	}
}

func TestCompleteFetchRun_Nil(t *testing.T) {
	store := setupTestStore(t)
	if err := store.CompleteFetchRun(nil); err != nil {
		t.Errorf("CompleteFetchRun(nil) = %v", err)
	}
}
