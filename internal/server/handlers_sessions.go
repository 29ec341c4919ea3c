package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/db"
	"github.com/jonathan/cv-tailor/internal/rendering"
	"github.com/jonathan/cv-tailor/internal/server/middleware"
	"github.com/jonathan/cv-tailor/internal/types"
)

// SessionRequest is the request body for POST /sessions and
// PUT /sessions/{id}. Both inputs are raw text; PUT reruns the pipeline
// with whatever is provided plus what the session already holds.
type SessionRequest struct {
	CVText string `json:"cv_text,omitempty"`
	JDText string `json:"jd_text,omitempty"`
}

// SessionResponse is the response body for the session endpoints.
type SessionResponse struct {
	ID      uuid.UUID   `json:"id"`
	Token   string      `json:"token,omitempty"`
	Session *db.Session `json:"session"`
}

// handleCreateSession creates a session from raw inputs and returns a
// bearer token scoped to it. When both inputs are present the session
// stores a full tailored result; with only a CV it stores the parsed
// profile.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CVText == "" && req.JDText == "" {
		s.errorResponse(w, http.StatusBadRequest, "cv_text or jd_text is required")
		return
	}

	session := &db.Session{}
	if err := s.runIntoSession(session, req); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.CreateSession(r.Context(), session, s.retention)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	session.ID = id

	token, err := s.jwtService.GenerateToken(id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		ID:      id,
		Token:   token,
		Session: session,
	})
}

// handleGetSession returns the session the bearer token is scoped to.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.authorizedSession(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{
		ID:      session.ID,
		Session: session,
	})
}

// handleUpdateSession reruns the pipeline with new inputs and stores the
// refreshed result on the session.
func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.authorizedSession(w, r)
	if !ok {
		return
	}

	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Fall back to the stored inputs for anything not resupplied
	if req.CVText == "" && session.Profile != nil {
		req.CVText = rawProfileText(session)
	}
	if req.JDText == "" && session.Job != nil {
		req.JDText = session.Job.RawText
	}

	if err := s.runIntoSession(session, req); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpdateSession(r.Context(), session); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{
		ID:      session.ID,
		Session: session,
	})
}

// handleExportSession renders the session's tailored result in the
// requested format: markdown (default), text, or json.
func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.authorizedSession(w, r)
	if !ok {
		return
	}
	if session.Result == nil {
		s.errorResponse(w, http.StatusConflict, "session has no tailored result to export")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = config.OutputMarkdown
	}

	switch format {
	case config.OutputMarkdown:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(rendering.RenderMarkdown(session.Result)))
	case config.OutputText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(rendering.RenderPlainText(session.Result)))
	case config.OutputJSON:
		s.jsonResponse(w, http.StatusOK, session.Result)
	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown export format: "+format)
	}
}

// authorizedSession loads the session named in the path after checking
// the bearer token is scoped to it.
func (s *Server) authorizedSession(w http.ResponseWriter, r *http.Request) (*db.Session, bool) {
	pathID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session id")
		return nil, false
	}

	tokenID, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	if tokenID != pathID {
		err := &ErrSessionForbidden{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}

	session, err := s.store.GetSession(r.Context(), pathID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load session")
		return nil, false
	}
	if session == nil {
		notFound := &ErrSessionNotFound{SessionID: pathID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, false
	}

	return session, true
}

// runIntoSession runs the pipeline on the request inputs and stores the
// outcome on the session.
func (s *Server) runIntoSession(session *db.Session, req SessionRequest) error {
	result, err := s.pipeline.Tailor(req.CVText, req.JDText, s.opts)
	if err != nil {
		return err
	}

	session.Profile = result.Draft
	session.Result = result
	if req.JDText != "" {
		if jd, _, err := s.pipeline.ReparseJD(req.JDText); err == nil {
			session.Job = jd
		}
	}
	return nil
}

// rawProfileText reconstructs a plain-text CV from the stored draft so a
// PUT that only replaces the posting can rerun the pipeline.
func rawProfileText(session *db.Session) string {
	if session.Profile == nil {
		return ""
	}
	return rendering.RenderPlainText(&types.TailoredCVResult{Draft: session.Profile})
}
