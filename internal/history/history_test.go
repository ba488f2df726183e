package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drivetrainhq/eagleview/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, Run{
		StartedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Fetched:   42,
		Merged:    40,
		Excluded:  2,
		JSONFile:  "linear_view_issues_20260824_100000.json",
		CSVFile:   "linear_view_issues_20260824_100000.csv",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.ID == "" {
		t.Error("expected generated ID")
	}

	_, err = store.Record(ctx, Run{
		StartedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Fetched:   50,
		Merged:    50,
		JSONFile:  "linear_view_issues_20260825_100000.json",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Fetched != 50 {
		t.Errorf("expected newest run first, got %+v", runs[0])
	}
}

func TestLatest(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest != nil {
		t.Errorf("expected nil for empty store, got %+v", latest)
	}

	store.Record(ctx, Run{StartedAt: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), Fetched: 1})
	store.Record(ctx, Run{StartedAt: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), Fetched: 2})

	latest, err = store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Fetched != 2 {
		t.Errorf("expected newest run, got %+v", latest)
	}
}

func TestRoute_History(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.Record(ctx, Run{Fetched: 10, Merged: 9, Excluded: 1})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/history?limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var runs []Run
	json.Unmarshal(w.Body.Bytes(), &runs)
	if len(runs) != 1 || runs[0].Merged != 9 {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestRoute_HistoryErrorIsJSON(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	database.Close()

	r := chi.NewRouter()
	RegisterRoutes(r, NewStore(database))

	req := httptest.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error, got Content-Type %q", ct)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp["error"] == "" {
		t.Errorf("expected error payload, got %q", w.Body.String())
	}
}
