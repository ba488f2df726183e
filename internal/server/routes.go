package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/exec"

	"github.com/go-chi/chi/v5"

	"github.com/drivetrainhq/eagleview/internal/export"
	"github.com/drivetrainhq/eagleview/internal/linear"
)

func (s *Server) registerRoutes(r chi.Router) {
	r.Post("/api/add-label", s.handleAddLabel)
	r.Post("/api/remove-label", s.handleRemoveLabel)
	r.Post("/api/available-labels", s.handleAvailableLabels)
	r.Get("/api/issue-labels", s.handleIssueLabels)
	r.Get("/api/latest-json", s.handleLatestJSON)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeUpstreamError maps Linear failures onto the API error model:
// GraphQL errors become 400s, everything else is a 500.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *linear.APIError
	if errors.As(err, &apiErr) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

type labelRequest struct {
	IssueID string `json:"issueId"`
	LabelID string `json:"labelId"`
}

func (s *Server) handleAddLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IssueID == "" || req.LabelID == "" {
		writeError(w, http.StatusBadRequest, "Missing issueId or labelId")
		return
	}

	res, err := s.client.AddLabel(r.Context(), req.IssueID, req.LabelID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"issueAddLabel": res})
}

func (s *Server) handleRemoveLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IssueID == "" || req.LabelID == "" {
		writeError(w, http.StatusBadRequest, "Missing issueId or labelId")
		return
	}

	res, err := s.client.RemoveLabel(r.Context(), req.IssueID, req.LabelID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"issueRemoveLabel": res})
}

type availableLabelsRequest struct {
	TeamID string `json:"teamId"`
}

func (s *Server) handleAvailableLabels(w http.ResponseWriter, r *http.Request) {
	// The body is optional: no team means workspace-wide labels.
	var req availableLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var labels []linear.Label
	var err error
	if req.TeamID != "" {
		labels, err = s.client.TeamLabels(r.Context(), req.TeamID)
	} else {
		labels, err = s.client.WorkspaceLabels(r.Context())
	}
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if labels == nil {
		labels = []linear.Label{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}

func (s *Server) handleIssueLabels(w http.ResponseWriter, r *http.Request) {
	issueID := r.URL.Query().Get("issueId")
	if issueID == "" {
		writeError(w, http.StatusBadRequest, "Missing issueId")
		return
	}

	labels, err := s.client.IssueLabels(r.Context(), issueID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if labels == nil {
		labels = []linear.Label{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}

func (s *Server) handleLatestJSON(w http.ResponseWriter, r *http.Request) {
	name, err := export.LatestJSON(s.cfg.DataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "No data files found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"filename": name})
}

type refreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Output  string `json:"output,omitempty"`
}

// handleRefreshData re-runs the fetch command and reports the outcome. The
// subprocess inherits the environment, so the API key carries over.
func (s *Server) handleRefreshData(w http.ResponseWriter, r *http.Request) {
	cmdline := s.cfg.FetchCommand
	if len(cmdline) == 0 {
		self, err := os.Executable()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cmdline = []string{self, "fetch"}
		if s.cfg.ConfigPath != "" {
			cmdline = append(cmdline, "--config", s.cfg.ConfigPath)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RefreshTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cmdline[0], cmdline[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg := "fetch timed out after " + s.cfg.RefreshTimeout.String()
		if errOut := stderr.String(); errOut != "" {
			msg += ": " + errOut
		}
		writeJSON(w, http.StatusInternalServerError, refreshResponse{
			Success: false,
			Error:   msg,
			Output:  stdout.String(),
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, refreshResponse{
			Success: false,
			Error:   "fetch failed: " + stderr.String(),
			Output:  stdout.String(),
		})
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Success: true,
		Message: "Data refreshed successfully",
		Output:  stdout.String(),
	})
}
