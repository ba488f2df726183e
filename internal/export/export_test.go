package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/drivetrainhq/eagleview/internal/linear"
)

var snapshotTime = time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)

func sampleIssues() []linear.Issue {
	estimate := 3.0
	return []linear.Issue{
		{
			Identifier:    "ENG-1",
			Title:         "Verify billing export",
			URL:           "https://linear.app/acme/issue/ENG-1",
			State:         &linear.WorkflowState{Name: "In Progress"},
			PriorityLabel: "High",
			Estimate:      &estimate,
			Assignee:      &linear.User{DisplayName: "Alice"},
			Team:          &linear.Team{Name: "Engineering"},
			Project:       &linear.Project{Name: "V3"},
			Cycle:         &linear.Cycle{Name: "Cycle 12"},
			Labels:        linear.LabelConnection{Nodes: []linear.Label{{Name: "v3-verify"}, {Name: "backend"}}},
			CreatedAt:     "2026-08-01T10:00:00.000Z",
			UpdatedAt:     "2026-08-20T09:00:00.000Z",
			DueDate:       "2026-09-01",
		},
		{
			// All optional nested records absent.
			Identifier: "ENG-2",
			Title:      "Orphan issue",
			URL:        "https://linear.app/acme/issue/ENG-2",
		},
	}
}

func TestWriteCSV_FixedColumnSet(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteCSV(dir, sampleIssues(), snapshotTime)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if name != "linear_view_issues_20260825_143005.csv" {
		t.Errorf("unexpected filename %q", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("opening csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	if strings.Join(rows[0], ",") != strings.Join(Columns, ",") {
		t.Errorf("unexpected header: %v", rows[0])
	}
	for i, row := range rows[1:] {
		if len(row) != len(Columns) {
			t.Errorf("row %d: expected %d columns, got %d", i, len(Columns), len(row))
		}
	}

	full := rows[1]
	if full[0] != "ENG-1" || full[3] != "In Progress" || full[4] != "High" || full[5] != "3" {
		t.Errorf("unexpected flattening: %v", full)
	}
	if full[10] != "v3-verify, backend" {
		t.Errorf("expected joined labels, got %q", full[10])
	}

	sparse := rows[2]
	for _, idx := range []int{3, 5, 6, 7, 8, 9, 10} {
		if sparse[idx] != "" {
			t.Errorf("expected empty %s for sparse issue, got %q", Columns[idx], sparse[idx])
		}
	}
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteJSON(dir, sampleIssues(), snapshotTime)
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if name != "linear_view_issues_20260825_143005.json" {
		t.Errorf("unexpected filename %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading json: %v", err)
	}
	var issues []linear.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		t.Fatalf("unmarshalling snapshot: %v", err)
	}
	if len(issues) != 2 || issues[0].Identifier != "ENG-1" {
		t.Errorf("unexpected snapshot content: %+v", issues)
	}
	if issues[0].Labels.Nodes[0].Name != "v3-verify" {
		t.Errorf("expected nested labels preserved, got %+v", issues[0].Labels)
	}
}

func TestLatestJSON(t *testing.T) {
	dir := t.TempDir()

	if _, err := LatestJSON(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist for empty dir, got %v", err)
	}

	old := filepath.Join(dir, "linear_view_issues_20260801_000000.json")
	newer := filepath.Join(dir, "linear_view_issues_20260825_000000.json")
	other := filepath.Join(dir, "notes.json")
	for _, p := range []string{old, newer, other} {
		if err := os.WriteFile(p, []byte("[]"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}
	base := time.Now()
	if err := os.Chtimes(old, base.Add(-2*time.Hour), base.Add(-2*time.Hour)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(newer, base, base); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	// A non-snapshot file must never win, regardless of mtime.
	if err := os.Chtimes(other, base.Add(time.Hour), base.Add(time.Hour)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	latest, err := LatestJSON(dir)
	if err != nil {
		t.Fatalf("LatestJSON: %v", err)
	}
	if latest != filepath.Base(newer) {
		t.Errorf("expected %s, got %s", filepath.Base(newer), latest)
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteReport(dir, "# Summary\n\n| State | Count |\n| --- | --- |\n| Done | 4 |\n")
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<table>") || !strings.Contains(html, "<td>4</td>") {
		t.Errorf("expected rendered markdown table, got:\n%s", html)
	}
}
