package fetcher

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/drivetrainhq/eagleview/internal/linear"
)

// priorityOrder is the display order for priority buckets.
var priorityOrder = []string{"Urgent", "High", "Medium", "Low", "No priority"}

// Summary groups the merged issue set by state, assignee and priority.
type Summary struct {
	Total      int
	ByState    map[string]int
	ByAssignee map[string]int
	ByPriority map[string]int
}

// Summarize computes grouping counts over the issue set.
func Summarize(issues []linear.Issue) *Summary {
	s := &Summary{
		Total:      len(issues),
		ByState:    make(map[string]int),
		ByAssignee: make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for _, issue := range issues {
		state := "Unknown"
		if issue.State != nil && issue.State.Name != "" {
			state = issue.State.Name
		}
		s.ByState[state]++

		assignee := "Unassigned"
		if issue.Assignee != nil {
			if issue.Assignee.DisplayName != "" {
				assignee = issue.Assignee.DisplayName
			} else if issue.Assignee.Name != "" {
				assignee = issue.Assignee.Name
			}
		}
		s.ByAssignee[assignee]++

		priority := issue.PriorityLabel
		if priority == "" {
			priority = "No priority"
		}
		s.ByPriority[priority]++
	}
	return s
}

// WriteText prints the summary block to w.
func (s *Summary) WriteText(w io.Writer) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "SUMMARY: %d issues found\n", s.Total)
	fmt.Fprintf(w, "%s\n\n", rule)

	fmt.Fprintln(w, "By State:")
	for _, e := range sortedByCount(s.ByState) {
		fmt.Fprintf(w, "  %s: %d\n", e.name, e.count)
	}

	fmt.Fprintln(w, "\nBy Assignee:")
	for _, e := range sortedByCount(s.ByAssignee) {
		fmt.Fprintf(w, "  %s: %d\n", e.name, e.count)
	}

	fmt.Fprintln(w, "\nBy Priority:")
	for _, p := range priorityOrder {
		if n, ok := s.ByPriority[p]; ok {
			fmt.Fprintf(w, "  %s: %d\n", p, n)
		}
	}
	fmt.Fprintf(w, "\n%s\n", rule)
}

// Markdown renders the summary as a markdown document for the HTML report.
func (s *Summary) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Release verification summary\n\n%d issues in the current snapshot.\n", s.Total)

	writeSection := func(title string, entries []countEntry) {
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		fmt.Fprintf(&b, "| %s | Count |\n| --- | --- |\n", title)
		for _, e := range entries {
			fmt.Fprintf(&b, "| %s | %d |\n", e.name, e.count)
		}
	}

	writeSection("State", sortedByCount(s.ByState))
	writeSection("Assignee", sortedByCount(s.ByAssignee))

	var priorities []countEntry
	for _, p := range priorityOrder {
		if n, ok := s.ByPriority[p]; ok {
			priorities = append(priorities, countEntry{p, n})
		}
	}
	writeSection("Priority", priorities)

	return b.String()
}

type countEntry struct {
	name  string
	count int
}

// sortedByCount orders entries by descending count, then name for stability.
func sortedByCount(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for name, count := range m {
		entries = append(entries, countEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}
