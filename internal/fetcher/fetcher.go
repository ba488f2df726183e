// Package fetcher runs the snapshot pipeline: paginate label-filtered issue
// queries, merge the result sets by identifier, and drop issues carrying the
// exclusion label.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/drivetrainhq/eagleview/internal/linear"
	"github.com/drivetrainhq/eagleview/internal/progress"
)

// Options configure a fetch run.
type Options struct {
	// ViewID selects a saved view to paginate when Labels is empty.
	ViewID string
	// Labels are fetched one query per label and merged by identifier.
	Labels []string
	// ExcludeLabel drops matching issues from the merged set,
	// compared case-insensitively. Empty disables the filter.
	ExcludeLabel string
	// MaxIssues caps the total number of issues fetched across all queries.
	MaxIssues int
	// PageSize is the page size requested per query, capped by MaxIssues.
	PageSize int
	// Reporter receives progress updates. Nil means silent.
	Reporter progress.Reporter
}

// Result is the outcome of a fetch run.
type Result struct {
	Issues     []linear.Issue
	Fetched    int // issues fetched across all queries, before merging
	Duplicates int // issues dropped because their identifier was already seen
	Excluded   int // issues dropped by the exclusion label
	Duration   time.Duration
}

// Fetcher drives the pipeline against a Linear client.
type Fetcher struct {
	client *linear.Client
	opts   Options
}

// New creates a Fetcher. Zero MaxIssues and PageSize get conservative defaults.
func New(client *linear.Client, opts Options) *Fetcher {
	if opts.MaxIssues <= 0 {
		opts.MaxIssues = 1000
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Silent{}
	}
	return &Fetcher{client: client, opts: opts}
}

// Run executes the pipeline. Issues keep first-seen order across queries.
func (f *Fetcher) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{}

	var fetched []linear.Issue
	if len(f.opts.Labels) > 0 {
		for _, label := range f.opts.Labels {
			if len(fetched) >= f.opts.MaxIssues {
				break
			}
			issues, err := f.paginate(ctx, label, func(first int, after string) (*linear.IssuePage, error) {
				return f.client.LabeledIssues(ctx, label, first, after)
			}, f.opts.MaxIssues-len(fetched))
			if err != nil {
				return nil, fmt.Errorf("fetching issues labeled %q: %w", label, err)
			}
			fetched = append(fetched, issues...)
		}
	} else {
		issues, err := f.paginate(ctx, "view "+f.opts.ViewID, func(first int, after string) (*linear.IssuePage, error) {
			return f.client.ViewIssues(ctx, f.opts.ViewID, first, after)
		}, f.opts.MaxIssues)
		if err != nil {
			return nil, fmt.Errorf("fetching view issues: %w", err)
		}
		fetched = issues
	}
	res.Fetched = len(fetched)

	// Merge by identifier, first occurrence wins.
	seen := make(map[string]bool, len(fetched))
	merged := make([]linear.Issue, 0, len(fetched))
	for _, issue := range fetched {
		if seen[issue.Identifier] {
			res.Duplicates++
			continue
		}
		seen[issue.Identifier] = true
		merged = append(merged, issue)
	}

	// Drop issues carrying the exclusion label.
	if f.opts.ExcludeLabel != "" {
		kept := merged[:0]
		for _, issue := range merged {
			if issue.HasLabel(f.opts.ExcludeLabel) {
				res.Excluded++
				continue
			}
			kept = append(kept, issue)
		}
		merged = kept
	}

	res.Issues = merged
	res.Duration = time.Since(start)
	return res, nil
}

// paginate follows cursors until the API reports no further page or the
// remaining budget is exhausted.
func (f *Fetcher) paginate(ctx context.Context, desc string, fetch func(first int, after string) (*linear.IssuePage, error), budget int) ([]linear.Issue, error) {
	f.opts.Reporter.Start(desc)
	defer f.opts.Reporter.Finish()

	var all []linear.Issue
	var cursor string
	for len(all) < budget {
		first := f.opts.PageSize
		if remaining := budget - len(all); remaining < first {
			first = remaining
		}
		page, err := fetch(first, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Nodes...)
		f.opts.Reporter.Add(len(page.Nodes))

		if !page.PageInfo.HasNextPage || len(page.Nodes) == 0 {
			break
		}
		cursor = page.PageInfo.EndCursor
	}
	return all, nil
}
