// Package export writes timestamped JSON and CSV snapshots of an issue set
// and locates the most recent snapshot on disk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/drivetrainhq/eagleview/internal/linear"
)

// snapshotPrefix names the snapshot files; kept stable so dashboards and
// discovery agree on the pattern.
const snapshotPrefix = "linear_view_issues_"

// timestampLayout is the filename timestamp format.
const timestampLayout = "20060102_150405"

// Columns is the fixed CSV column set, in order.
var Columns = []string{
	"identifier", "title", "url", "state", "priority", "estimate",
	"assignee", "team", "project", "cycle", "labels",
	"created_at", "updated_at", "due_date",
}

// SnapshotName builds a snapshot filename for the given time and extension.
func SnapshotName(t time.Time, ext string) string {
	return snapshotPrefix + t.Format(timestampLayout) + "." + ext
}

// WriteJSON writes the issues as an indented JSON array and returns the
// written filename (relative to dir).
func WriteJSON(dir string, issues []linear.Issue, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	name := SnapshotName(now, "json")
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling issues: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return name, nil
}

// WriteCSV writes the issues with the fixed column set and returns the
// written filename (relative to dir).
func WriteCSV(dir string, issues []linear.Issue, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	name := SnapshotName(now, "csv")
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, issue := range issues {
		if err := w.Write(csvRow(issue)); err != nil {
			return "", fmt.Errorf("writing row for %s: %w", issue.Identifier, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return name, nil
}

// csvRow flattens an issue into the fixed column set. Absent nested records
// become empty strings.
func csvRow(issue linear.Issue) []string {
	state := ""
	if issue.State != nil {
		state = issue.State.Name
	}
	estimate := ""
	if issue.Estimate != nil {
		estimate = strconv.FormatFloat(*issue.Estimate, 'f', -1, 64)
	}
	assignee := ""
	if issue.Assignee != nil {
		assignee = issue.Assignee.DisplayName
	}
	team := ""
	if issue.Team != nil {
		team = issue.Team.Name
	}
	project := ""
	if issue.Project != nil {
		project = issue.Project.Name
	}
	cycle := ""
	if issue.Cycle != nil {
		cycle = issue.Cycle.Name
	}
	return []string{
		issue.Identifier,
		issue.Title,
		issue.URL,
		state,
		issue.PriorityLabel,
		estimate,
		assignee,
		team,
		project,
		cycle,
		strings.Join(issue.LabelNames(), ", "),
		issue.CreatedAt,
		issue.UpdatedAt,
		issue.DueDate,
	}
}

// LatestJSON returns the filename of the most recent JSON snapshot in dir,
// determined by modification time. Returns os.ErrNotExist when there is none.
func LatestJSON(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", os.ErrNotExist
		}
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	var latest string
	var latestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, _ := doublestar.Match(snapshotPrefix+"*.json", entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = entry.Name()
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", os.ErrNotExist
	}
	return latest, nil
}
