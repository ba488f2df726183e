package linear

import (
	"context"
	"fmt"
)

// CustomView fetches the metadata of a saved view. Returns nil when the
// view does not exist.
func (c *Client) CustomView(ctx context.Context, viewID string) (*CustomView, error) {
	var data struct {
		CustomView *CustomView `json:"customView"`
	}
	err := c.do(ctx, customViewQuery, map[string]any{"viewId": viewID}, &data)
	if err != nil {
		return nil, err
	}
	return data.CustomView, nil
}

// ViewIssues fetches one page of issues from a custom view.
func (c *Client) ViewIssues(ctx context.Context, viewID string, first int, after string) (*IssuePage, error) {
	variables := map[string]any{"viewId": viewID, "first": first}
	if after != "" {
		variables["after"] = after
	}
	var data struct {
		CustomView *struct {
			Issues IssuePage `json:"issues"`
		} `json:"customView"`
	}
	if err := c.do(ctx, viewIssuesQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.CustomView == nil {
		return nil, fmt.Errorf("custom view not found: %s", viewID)
	}
	return &data.CustomView.Issues, nil
}

// LabeledIssues fetches one page of issues carrying the given label name.
func (c *Client) LabeledIssues(ctx context.Context, label string, first int, after string) (*IssuePage, error) {
	variables := map[string]any{"label": label, "first": first}
	if after != "" {
		variables["after"] = after
	}
	var data struct {
		Issues IssuePage `json:"issues"`
	}
	if err := c.do(ctx, labeledIssuesQuery, variables, &data); err != nil {
		return nil, err
	}
	return &data.Issues, nil
}

// TeamLabels returns the labels defined on a team.
func (c *Client) TeamLabels(ctx context.Context, teamID string) ([]Label, error) {
	var data struct {
		Team *struct {
			Labels LabelConnection `json:"labels"`
		} `json:"team"`
	}
	if err := c.do(ctx, teamLabelsQuery, map[string]any{"teamId": teamID}, &data); err != nil {
		return nil, err
	}
	if data.Team == nil {
		return nil, fmt.Errorf("team not found: %s", teamID)
	}
	return data.Team.Labels.Nodes, nil
}

// WorkspaceLabels returns all labels in the viewer's organization.
func (c *Client) WorkspaceLabels(ctx context.Context) ([]Label, error) {
	var data struct {
		Viewer struct {
			Organization struct {
				Labels LabelConnection `json:"labels"`
			} `json:"organization"`
		} `json:"viewer"`
	}
	if err := c.do(ctx, workspaceLabelsQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Viewer.Organization.Labels.Nodes, nil
}

// IssueLabels returns the labels currently on an issue.
func (c *Client) IssueLabels(ctx context.Context, issueID string) ([]Label, error) {
	var data struct {
		Issue *struct {
			ID     string          `json:"id"`
			Labels LabelConnection `json:"labels"`
		} `json:"issue"`
	}
	if err := c.do(ctx, issueLabelsQuery, map[string]any{"issueId": issueID}, &data); err != nil {
		return nil, err
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("issue not found: %s", issueID)
	}
	return data.Issue.Labels.Nodes, nil
}

// AddLabel attaches a label to an issue and returns the mutation payload,
// including the issue's resulting label set.
func (c *Client) AddLabel(ctx context.Context, issueID, labelID string) (*LabelMutationResult, error) {
	var data struct {
		IssueAddLabel LabelMutationResult `json:"issueAddLabel"`
	}
	variables := map[string]any{"issueId": issueID, "labelId": labelID}
	if err := c.do(ctx, addLabelMutation, variables, &data); err != nil {
		return nil, err
	}
	return &data.IssueAddLabel, nil
}

// RemoveLabel detaches a label from an issue.
func (c *Client) RemoveLabel(ctx context.Context, issueID, labelID string) (*LabelMutationResult, error) {
	var data struct {
		IssueRemoveLabel LabelMutationResult `json:"issueRemoveLabel"`
	}
	variables := map[string]any{"issueId": issueID, "labelId": labelID}
	if err := c.do(ctx, removeLabelMutation, variables, &data); err != nil {
		return nil, err
	}
	return &data.IssueRemoveLabel, nil
}
