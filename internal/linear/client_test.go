package linear

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeAPI decodes each GraphQL request and answers via the handler.
func fakeAPI(t *testing.T, handler func(query string, variables map[string]any) (any, []gqlError)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		data, errs := handler(req.Query, req.Variables)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "errors": errs})
	}))
}

func TestDo_SendsAuthHeader(t *testing.T) {
	var receivedAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	c := New("lin_api_secret", srv.URL)
	if err := c.do(context.Background(), "query { viewer { id } }", nil, nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if receivedAuth != "lin_api_secret" {
		t.Errorf("expected raw API key in Authorization header, got %q", receivedAuth)
	}
}

func TestDo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	c := New("key", srv.URL)
	err := c.do(context.Background(), "query {}", nil, nil)
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Errorf("expected status in error, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("non-200 responses must not be APIError")
	}
}

func TestDo_GraphQLErrors(t *testing.T) {
	srv := fakeAPI(t, func(query string, variables map[string]any) (any, []gqlError) {
		return nil, []gqlError{{Message: "unauthorized"}, {Message: "invalid query"}}
	})
	defer srv.Close()

	c := New("key", srv.URL)
	err := c.do(context.Background(), "query {}", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(apiErr.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(apiErr.Messages))
	}
	if !strings.Contains(err.Error(), "unauthorized") || !strings.Contains(err.Error(), "invalid query") {
		t.Errorf("expected messages joined into error, got %q", err.Error())
	}
}

func TestLabeledIssues(t *testing.T) {
	var receivedVars map[string]any
	srv := fakeAPI(t, func(query string, variables map[string]any) (any, []gqlError) {
		receivedVars = variables
		return map[string]any{
			"issues": IssuePage{
				Nodes: []Issue{
					{Identifier: "ENG-1", Title: "First"},
					{Identifier: "ENG-2", Title: "Second"},
				},
				PageInfo: PageInfo{HasNextPage: true, EndCursor: "cur1"},
			},
		}, nil
	})
	defer srv.Close()

	c := New("key", srv.URL)
	page, err := c.LabeledIssues(context.Background(), "v3-verify", 50, "")
	if err != nil {
		t.Fatalf("LabeledIssues: %v", err)
	}
	if len(page.Nodes) != 2 || page.Nodes[0].Identifier != "ENG-1" {
		t.Errorf("unexpected page nodes: %+v", page.Nodes)
	}
	if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor != "cur1" {
		t.Errorf("unexpected page info: %+v", page.PageInfo)
	}
	if receivedVars["label"] != "v3-verify" {
		t.Errorf("expected label variable, got %v", receivedVars)
	}
	if _, ok := receivedVars["after"]; ok {
		t.Error("after must be omitted on the first page")
	}
}

func TestLabeledIssues_PassesCursor(t *testing.T) {
	var receivedVars map[string]any
	srv := fakeAPI(t, func(query string, variables map[string]any) (any, []gqlError) {
		receivedVars = variables
		return map[string]any{"issues": IssuePage{}}, nil
	})
	defer srv.Close()

	c := New("key", srv.URL)
	if _, err := c.LabeledIssues(context.Background(), "x", 50, "cursor-42"); err != nil {
		t.Fatalf("LabeledIssues: %v", err)
	}
	if receivedVars["after"] != "cursor-42" {
		t.Errorf("expected after cursor, got %v", receivedVars)
	}
}

func TestCustomView_Missing(t *testing.T) {
	srv := fakeAPI(t, func(query string, variables map[string]any) (any, []gqlError) {
		return map[string]any{"customView": nil}, nil
	})
	defer srv.Close()

	c := New("key", srv.URL)
	view, err := c.CustomView(context.Background(), "nope")
	if err != nil {
		t.Fatalf("CustomView: %v", err)
	}
	if view != nil {
		t.Errorf("expected nil view, got %+v", view)
	}
}

func TestViewIssues_MissingView(t *testing.T) {
	srv := fakeAPI(t, func(query string, variables map[string]any) (any, []gqlError) {
		return map[string]any{"customView": nil}, nil
	})
	defer srv.Close()

	c := New("key", srv.URL)
	_, err := c.ViewIssues(context.Background(), "nope", 50, "")
	if err == nil || !strings.Contains(err.Error(), "custom view not found") {
		t.Errorf("expected missing-view error, got %v", err)
	}
}

func TestAddLabel(t *testing.T) {
	srv := fakeAPI(t, func(query string, variables map[string]any) (any, []gqlError) {
		if variables["issueId"] != "iss-1" || variables["labelId"] != "lab-1" {
			t.Errorf("unexpected variables: %v", variables)
		}
		return map[string]any{
			"issueAddLabel": LabelMutationResult{
				Success: true,
				Issue: Issue{
					ID:     "iss-1",
					Labels: LabelConnection{Nodes: []Label{{ID: "lab-1", Name: "verified", Color: "#0f0"}}},
				},
			},
		}, nil
	})
	defer srv.Close()

	c := New("key", srv.URL)
	res, err := c.AddLabel(context.Background(), "iss-1", "lab-1")
	if err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	if !res.Success {
		t.Error("expected success")
	}
	if len(res.Issue.Labels.Nodes) != 1 || res.Issue.Labels.Nodes[0].Name != "verified" {
		t.Errorf("unexpected labels: %+v", res.Issue.Labels.Nodes)
	}
}

func TestWorkspaceLabels(t *testing.T) {
	srv := fakeAPI(t, func(query string, variables map[string]any) (any, []gqlError) {
		return map[string]any{
			"viewer": map[string]any{
				"organization": map[string]any{
					"labels": LabelConnection{Nodes: []Label{{ID: "1", Name: "bug"}, {ID: "2", Name: "feature"}}},
				},
			},
		}, nil
	})
	defer srv.Close()

	c := New("key", srv.URL)
	labels, err := c.WorkspaceLabels(context.Background())
	if err != nil {
		t.Fatalf("WorkspaceLabels: %v", err)
	}
	if len(labels) != 2 || labels[0].Name != "bug" {
		t.Errorf("unexpected labels: %+v", labels)
	}
}

func TestIssueHasLabel_CaseInsensitive(t *testing.T) {
	issue := Issue{Labels: LabelConnection{Nodes: []Label{{Name: "Wont-Verify"}}}}
	if !issue.HasLabel("wont-verify") {
		t.Error("expected case-insensitive label match")
	}
	if issue.HasLabel("verified") {
		t.Error("unexpected label match")
	}
}
