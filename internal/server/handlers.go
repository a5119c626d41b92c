package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/prep-readiness/internal/export"
	"github.com/jonathan/prep-readiness/internal/types"
)

// handleCreateAnalysis analyzes a JD and saves it to history
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := s.analyses.AnalyzeAndPersist(r.Context(), req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, out)
}

// handlePreviewAnalysis analyzes a JD without saving anything
func (s *Server) handlePreviewAnalysis(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.analyses.Analyze(req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListAnalyses returns the history, newest update first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	page, err := s.analyses.History(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, page)
}

// handleLatestAnalysis returns the most recently updated analysis
func (s *Server) handleLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	v, err := s.analyses.Latest(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, v)
}

// handleGetAnalysis returns one analysis by id
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing analysis ID")
		return
	}

	v, err := s.analyses.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, v)
}

// handleSetConfidence records a skill self-assessment and returns the recomputed analysis
func (s *Server) handleSetConfidence(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing analysis ID")
		return
	}

	var req types.ConfidenceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := s.analyses.SetSkillConfidence(r.Context(), id, req.Skill, req.Confidence)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleBackfill persists inferred company intel and round mapping for an older analysis
func (s *Server) handleBackfill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing analysis ID")
		return
	}

	out, err := s.analyses.BackfillInference(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleExport renders an analysis as plain text.
// ?section=plan|checklist|questions returns one section; the default is the full report as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing analysis ID")
		return
	}

	v, err := s.analyses.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	switch section := r.URL.Query().Get("section"); section {
	case "plan":
		s.textResponse(w, http.StatusOK, export.Plan(v.Plan))
	case "checklist":
		s.textResponse(w, http.StatusOK, export.Checklist(v.Checklist))
	case "questions":
		s.textResponse(w, http.StatusOK, export.Questions(v.Questions))
	case "", "report":
		body, err := export.Report(v)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(v.ID)))
		s.textResponse(w, http.StatusOK, body)
	default:
		s.errorResponse(w, http.StatusBadRequest, "Unknown section: "+section)
	}
}
