// Package http provides http transport for cases
package http

import (
	"io"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"casework/internal/modkit/httpkit"
	perr "casework/internal/platform/errors"
	svc "casework/internal/services/api/cases/service"
)

// maxUploadBytes bounds the multipart form we are willing to parse
const maxUploadBytes = 10 << 20

// Register mounts cases endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Post(r, "/upload", h.upload)
	httpkit.Get(r, "/{caseID}", h.get)
	httpkit.Post(r, "/{caseID}/analyze", h.analyze)
	httpkit.Get(r, "/jobs/{jobID}", h.job)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /cases Cases casesList
// @Summary List the caller's cases
// @Tags Cases
// @Produce json
// @Success 200 {array} domain.Case "ok"
// @Router /cases [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)
	return h.svc.List(r.Context(), uid)
}

// swagger:route POST /cases/upload Cases casesUpload
// @Summary Upload a document and create a pending case
// @Tags Cases
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} domain.Case "created"
// @Router /cases/upload [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, perr.InvalidArgf("invalid multipart form: %v", err)
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, perr.Validationf("file field is required")
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, perr.InvalidArgf("read upload: %v", err)
	}

	c, err := h.svc.CreateFromUpload(r.Context(), uid, hdr.Filename, content)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}

// swagger:route GET /cases/{caseID} Cases casesGet
// @Summary Fetch one case
// @Tags Cases
// @Produce json
// @Success 200 {object} domain.Case "ok"
// @Router /cases/{caseID} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)
	return h.svc.Get(r.Context(), uid, chi.URLParam(r, "caseID"))
}

// swagger:route POST /cases/{caseID}/analyze Cases casesAnalyze
// @Summary Queue analysis for a case
// @Tags Cases
// @Produce json
// @Success 201 {object} domain.AnalysisJob "queued"
// @Router /cases/{caseID}/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)
	j, err := h.svc.QueueAnalysis(r.Context(), uid, chi.URLParam(r, "caseID"))
	if err != nil {
		return nil, err
	}
	return httpkit.Created(j), nil
}

// swagger:route GET /cases/jobs/{jobID} Cases casesJob
// @Summary Fetch one analysis job
// @Tags Cases
// @Produce json
// @Success 200 {object} domain.AnalysisJob "ok"
// @Router /cases/jobs/{jobID} [get]
func (h *handlers) job(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)
	return h.svc.Job(r.Context(), uid, chi.URLParam(r, "jobID"))
}
