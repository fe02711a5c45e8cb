package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagehighlight/internal/domain"
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/match"
	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
	"github.com/kailas-cloud/pagehighlight/internal/logger"
	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
	healthuc "github.com/kailas-cloud/pagehighlight/internal/usecase/health"
	highlightuc "github.com/kailas-cloud/pagehighlight/internal/usecase/highlight"
	uploaduc "github.com/kailas-cloud/pagehighlight/internal/usecase/upload"
	"github.com/kailas-cloud/pagehighlight/internal/version"
)

const (
	// DefaultMaxUploadBytes caps request bodies: the multipart upload and the
	// inline OCR documents of the process endpoints.
	DefaultMaxUploadBytes int64 = 50 << 20

	multipartMemory = 8 << 20

	msgMissingFiles = "Please upload both PDF and JSON"
	msgInvalidInput = "Invalid input."
	msgNotFound     = "word not found"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements api.ServerInterface for the chi router.
type Server struct {
	highlight      *highlightuc.Service
	uploads        *uploaduc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	maxUploadBytes int64
	errorHandlers  []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. maxUploadBytes <= 0 selects DefaultMaxUploadBytes.
func NewServer(
	highlight *highlightuc.Service,
	uploads *uploaduc.Service,
	health *healthuc.Service,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	s := &Server{
		highlight:      highlight,
		uploads:        uploads,
		health:         health,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUploadNotFound, http.StatusNotFound, gen.ErrorResponseCodeUploadNotFound),
		sentinelHandler(domain.ErrBatchTooLarge, http.StatusBadRequest, gen.ErrorResponseCodeBatchTooLarge),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed),
	}
	return s
}

// UploadPDF handles POST /pdf/upload.
func (s *Server) UploadPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if writeTooLarge(w, err) {
			return
		}
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, msgMissingFiles)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	pdfName, pdf, err := readFormFile(r, "pdfFile")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	jsonName, ocrJSON, err := readFormFile(r, "jsonFile")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.uploads.Save(r.Context(), uploaduc.Input{
		PDFName:    pdfName,
		PDF:        pdf,
		JSONName:   jsonName,
		JSON:       ocrJSON,
		SearchText: r.FormValue("searchText"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, msgMissingFiles)
			return
		}
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, gen.UploadResponse{
		ID:           res.Upload.ID(),
		PDFURL:       res.Upload.PDFURL(),
		JSON:         res.JSON,
		SearchString: res.Upload.SearchText(),
	})
}

// ProcessJSON handles POST /pdf/process-json.
func (s *Server) ProcessJSON(w http.ResponseWriter, r *http.Request) {
	var req gen.ProcessJSONRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	scope, err := scopeFromGen(req.Scope)
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	out, err := s.highlight.Process(r.Context(), highlightuc.Request{
		JSON:       req.JSON,
		SearchText: req.SearchText,
		Scope:      scope,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOutcome(w, out)
}

// ProcessBatch handles POST /pdf/process-batch.
func (s *Server) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req gen.ProcessBatchRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	scope, err := scopeFromGen(req.Scope)
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	items, err := s.highlight.ProcessBatch(r.Context(), req.JSON, req.Queries, scope)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := gen.BatchResponse{Items: make([]gen.BatchResultItem, len(items))}
	for i, it := range items {
		resp.Items[i] = gen.BatchResultItem{
			SearchText: it.SearchText,
			Status:     gen.MatchStatus(it.Outcome.Kind()),
			Items:      matchesToGen(it.Outcome.Matches()),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeBody reads a JSON body of at most maxUploadBytes into dst.
// On failure it writes the error response and returns false.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !writeTooLarge(w, err) {
			writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		}
		return false
	}
	return true
}

// writeTooLarge writes 413 when err comes from an exhausted MaxBytesReader.
func writeTooLarge(w http.ResponseWriter, err error) bool {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge, gen.ErrorResponseCodePayloadTooLarge,
		fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	return true
}

// GetUpload handles GET /uploads/{id}.
func (s *Server) GetUpload(w http.ResponseWriter, r *http.Request, id gen.UploadID) {
	r = withUploadID(r, id)
	u, err := s.uploads.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadToGen(u))
}

// DeleteUpload handles DELETE /uploads/{id}.
func (s *Server) DeleteUpload(w http.ResponseWriter, r *http.Request, id gen.UploadID) {
	r = withUploadID(r, id)
	if err := s.uploads.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUploadPDF handles GET /uploads/{id}/pdf.
func (s *Server) GetUploadPDF(w http.ResponseWriter, r *http.Request, id gen.UploadID) {
	r = withUploadID(r, id)
	u, data, err := s.uploads.PDF(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": u.PDFName()}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GetUploadJSON handles GET /uploads/{id}/json.
func (s *Server) GetUploadJSON(w http.ResponseWriter, r *http.Request, id gen.UploadID) {
	r = withUploadID(r, id)
	data, err := s.uploads.JSON(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// MatchUpload handles GET /uploads/{id}/matches.
func (s *Server) MatchUpload(w http.ResponseWriter, r *http.Request, id gen.UploadID, params gen.MatchUploadParams) {
	r = withUploadID(r, id)
	scope, err := scopeFromGen(params.Scope)
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	out, err := s.highlight.ProcessUpload(r.Context(), id, params.Q, scope)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeOutcome(w, out)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// writeOutcome maps the three outcome kinds to distinct status codes.
func writeOutcome(w http.ResponseWriter, out match.Outcome) {
	switch out.Kind() {
	case match.KindMatches:
		writeJSON(w, http.StatusOK, gen.MatchResponse{
			Status: gen.MatchStatusMatches,
			Items:  matchesToGen(out.Matches()),
		})
	case match.KindNotFound:
		writeJSON(w, http.StatusNotFound, gen.MatchResponse{
			Status:  gen.MatchStatusNotFound,
			Items:   []gen.MatchItem{},
			Message: msgNotFound,
		})
	default:
		writeJSON(w, http.StatusBadRequest, gen.MatchResponse{
			Status:  gen.MatchStatusInvalidInput,
			Items:   []gen.MatchItem{},
			Message: msgInvalidInput,
		})
	}
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		return invalid.Error()
	}
	sentinels := []error{
		domain.ErrUploadNotFound,
		domain.ErrBatchTooLarge,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}

// withUploadID tags the request logger with the upload being served.
func withUploadID(r *http.Request, id gen.UploadID) *http.Request {
	return r.WithContext(logger.With(r.Context(), zap.String("upload_id", id)))
}

// readFormFile returns the file name and contents of a multipart field.
// A missing field yields empty values.
func readFormFile(r *http.Request, field string) (string, []byte, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", field, err)
	}
	return hdr.Filename, data, nil
}

// scopeFromGen maps an optional scope parameter. Absent or empty means the service default.
func scopeFromGen(p *string) (match.Scope, error) {
	if p == nil || *p == "" {
		return "", nil
	}
	sc := match.Scope(*p)
	if !sc.IsValid() {
		return "", domain.NewInvalidInput("scope", fmt.Sprintf("must be one of %s, %s, %s", match.Compat, match.All, match.First))
	}
	return sc, nil
}

func matchesToGen(ms []match.Match) []gen.MatchItem {
	items := make([]gen.MatchItem, len(ms))
	for i := range ms {
		m := &ms[i]
		items[i] = gen.MatchItem{
			PageNumber: m.PageNumber(),
			PageWidth:  m.PageWidth(),
			PageHeight: m.PageHeight(),
			SearchText: m.SearchText(),
			Polygon:    m.Rect().Array(),
			WordIndex:  m.WordIndex(),
			WordCount:  m.WordCount(),
		}
	}
	return items
}

func uploadToGen(u domupload.Upload) gen.Upload {
	return gen.Upload{
		ID:         u.ID(),
		PDFURL:     u.PDFURL(),
		PDFName:    u.PDFName(),
		JSONName:   u.JSONName(),
		SearchText: u.SearchText(),
		PDFSize:    u.PDFSize(),
		JSONSize:   u.JSONSize(),
		CreatedAt:  u.CreatedAt(),
	}
}
