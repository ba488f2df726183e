// Package linear is a minimal client for the Linear GraphQL API, covering
// the queries and mutations the dashboard needs: custom views, label-filtered
// issue listing with cursor pagination, and label management.
package linear

import "strings"

// Label is a tag attached to an issue.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LabelConnection wraps the nodes list Linear returns for label fields.
type LabelConnection struct {
	Nodes []Label `json:"nodes"`
}

// User identifies a Linear user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// UserConnection wraps the nodes list for user fields such as subscribers.
type UserConnection struct {
	Nodes []User `json:"nodes"`
}

// Team identifies a Linear team.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key,omitempty"`
}

// Project identifies a Linear project.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cycle identifies a Linear cycle.
type Cycle struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number,omitempty"`
}

// WorkflowState is the state an issue is in (e.g. "In Progress").
type WorkflowState struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
}

// IssueRef is a shallow reference to an issue (parent/children links).
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// IssueRefConnection wraps the nodes list for issue reference fields.
type IssueRefConnection struct {
	Nodes []IssueRef `json:"nodes"`
}

// Issue is a work item record. Fields mirror the API response and are
// re-serialized verbatim into JSON snapshots.
type Issue struct {
	ID            string             `json:"id"`
	Identifier    string             `json:"identifier"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	URL           string             `json:"url"`
	Number        int                `json:"number"`
	State         *WorkflowState     `json:"state"`
	Priority      int                `json:"priority"`
	PriorityLabel string             `json:"priorityLabel"`
	Estimate      *float64           `json:"estimate"`
	DueDate       string             `json:"dueDate,omitempty"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
	CompletedAt   string             `json:"completedAt,omitempty"`
	CanceledAt    string             `json:"canceledAt,omitempty"`
	ArchivedAt    string             `json:"archivedAt,omitempty"`
	Labels        LabelConnection    `json:"labels"`
	Team          *Team              `json:"team"`
	Project       *Project           `json:"project"`
	Cycle         *Cycle             `json:"cycle"`
	Assignee      *User              `json:"assignee"`
	Creator       *User              `json:"creator"`
	Subscribers   UserConnection     `json:"subscribers"`
	Parent        *IssueRef          `json:"parent"`
	Children      IssueRefConnection `json:"children"`
}

// HasLabel reports whether the issue carries a label with the given name,
// compared case-insensitively.
func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels.Nodes {
		if strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}

// LabelNames returns the names of all labels on the issue.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels.Nodes))
	for _, l := range i.Labels.Nodes {
		names = append(names, l.Name)
	}
	return names
}

// CustomView is a saved, named filter defined in Linear.
type CustomView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	Team        *Team  `json:"team"`
	Creator     *User  `json:"creator"`
}

// PageInfo carries cursor pagination state.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// IssuePage is one page of an issue listing.
type IssuePage struct {
	Nodes    []Issue  `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

// LabelMutationResult is the payload of issueAddLabel / issueRemoveLabel.
type LabelMutationResult struct {
	Success bool  `json:"success"`
	Issue   Issue `json:"issue"`
}
