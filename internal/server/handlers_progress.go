package server

import (
	"net/http"

	"github.com/jonathan/prep-readiness/internal/progress"
	"github.com/jonathan/prep-readiness/internal/storage"
)

// ProgressResponse is the full build progress state
type ProgressResponse struct {
	Status     progress.Status     `json:"status"`
	Steps      progress.Steps      `json:"steps"`
	Tests      progress.Tests      `json:"tests"`
	TestItems  []progress.TestItem `json:"testItems"`
	Submission progress.Submission `json:"submission"`
}

// ToggleRequest sets one step or test flag
type ToggleRequest struct {
	Done bool `json:"done"`
}

// progressWrite wraps a tracker result with a warning when it could not be persisted
type progressWrite struct {
	Data     any      `json:"data"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) writeProgress(w http.ResponseWriter, data any, err error) {
	if err != nil && !storage.IsWriteFailure(err) {
		s.serviceError(w, err)
		return
	}
	resp := progressWrite{Data: data}
	if err != nil {
		resp.Warnings = []string{"Could not save progress; the change is not persisted."}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetProgress returns steps, tests, proof links and the shipped status
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := s.progress.Status(ctx)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	steps, err := s.progress.Steps(ctx)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	tests, err := s.progress.Tests(ctx)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	sub, err := s.progress.Submission(ctx)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ProgressResponse{
		Status:     status,
		Steps:      steps,
		Tests:      tests,
		TestItems:  progress.TestItems,
		Submission: sub,
	})
}

// handleSetStep marks a build step complete or incomplete
func (s *Server) handleSetStep(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	steps, err := s.progress.SetStep(r.Context(), progress.StepID(r.PathValue("id")), req.Done)
	s.writeProgress(w, steps, err)
}

// handleSetTest marks a manual test passed or not
func (s *Server) handleSetTest(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tests, err := s.progress.SetTest(r.Context(), progress.TestID(r.PathValue("id")), req.Done)
	s.writeProgress(w, tests, err)
}

// handleResetTests clears the manual test checklist
func (s *Server) handleResetTests(w http.ResponseWriter, r *http.Request) {
	tests, err := s.progress.ResetTests(r.Context())
	s.writeProgress(w, tests, err)
}

// handleUpdateSubmission merges proof links
func (s *Server) handleUpdateSubmission(w http.ResponseWriter, r *http.Request) {
	var req progress.SubmissionUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sub, err := s.progress.UpdateSubmission(r.Context(), req)
	s.writeProgress(w, sub, err)
}

// handleSubmissionText returns the formatted final submission
func (s *Server) handleSubmissionText(w http.ResponseWriter, r *http.Request) {
	text, err := s.progress.SubmissionText(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.textResponse(w, http.StatusOK, text)
}
