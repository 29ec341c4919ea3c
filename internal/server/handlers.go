package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/pipeline"
)

// maxUploadBytes caps the size of an uploaded document.
const maxUploadBytes = 10 << 20 // 10 MB

var validate = validator.New()

// TailorRequest is the request body for POST /tailor.
type TailorRequest struct {
	CVText string `json:"cv_text" validate:"required_without=JDText"`
	JDText string `json:"jd_text" validate:"required_without=CVText"`

	DisableBulletRewrite    bool `json:"disable_bullet_rewrite,omitempty"`
	DisableInjectionPrompts bool `json:"disable_injection_prompts,omitempty"`
	TopSkills               int  `json:"top_skills,omitempty" validate:"gte=0"`
}

// ParseRequest is the request body for the POST /parse endpoints.
type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

// UploadResponse is the response body for POST /upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// handleTailor runs the full tailoring pipeline on raw inputs.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req TailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.pipeline.Tailor(req.CVText, req.JDText, s.tailorOptions(req))
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleParseCV parses a CV without tailoring it.
func (s *Server) handleParseCV(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, issues, err := s.pipeline.ReparseCV(req.Text)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profile": profile,
		"notices": issueStrings(issues),
	})
}

// handleParseJD parses a job posting without tailoring.
func (s *Server) handleParseJD(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jd, issues, err := s.pipeline.ReparseJD(req.Text)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job":     jd,
		"notices": issueStrings(issues),
	})
}

// handleUpload extracts plain text from an uploaded document.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing 'file' form field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "could not read upload")
		return
	}

	text, err := ingestion.ExtractText(header.Filename, data)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		Filename: header.Filename,
		Text:     text,
	})
}

// tailorOptions merges per-request overrides onto the server defaults.
func (s *Server) tailorOptions(req TailorRequest) pipeline.Options {
	opts := s.opts
	if req.DisableBulletRewrite {
		opts.EnableBulletRewrite = false
	}
	if req.DisableInjectionPrompts {
		opts.EnableSkillInjectionPrompts = false
	}
	if req.TopSkills > 0 {
		opts.TopNStrategySkills = req.TopSkills
	}
	return opts
}

func issueStrings(issues []error) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Error())
	}
	return out
}
