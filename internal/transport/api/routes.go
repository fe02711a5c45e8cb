package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Store a PDF and its OCR JSON.
	// (POST /pdf/upload)
	UploadPDF(w http.ResponseWriter, r *http.Request)
	// Search OCR JSON sent in the request body.
	// (POST /pdf/process-json)
	ProcessJSON(w http.ResponseWriter, r *http.Request)
	// Run several searches against one OCR JSON document.
	// (POST /pdf/process-batch)
	ProcessBatch(w http.ResponseWriter, r *http.Request)
	// (GET /uploads/{id})
	GetUpload(w http.ResponseWriter, r *http.Request, id UploadID)
	// (DELETE /uploads/{id})
	DeleteUpload(w http.ResponseWriter, r *http.Request, id UploadID)
	// (GET /uploads/{id}/pdf)
	GetUploadPDF(w http.ResponseWriter, r *http.Request, id UploadID)
	// (GET /uploads/{id}/json)
	GetUploadJSON(w http.ResponseWriter, r *http.Request, id UploadID)
	// Search the OCR JSON of a stored upload.
	// (GET /uploads/{id}/matches)
	MatchUpload(w http.ResponseWriter, r *http.Request, id UploadID, params MatchUploadParams)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// MiddlewareFunc wraps a single route handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// RequiredParamError reports a missing required parameter.
type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("Query argument %s is required, but not found", e.ParamName)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	var handler http.Handler = h
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) bindID(w http.ResponseWriter, r *http.Request) (UploadID, bool) {
	var id UploadID
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return "", false
	}
	return id, true
}

// UploadPDF operation middleware.
func (siw *ServerInterfaceWrapper) UploadPDF(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.UploadPDF)
}

// ProcessJSON operation middleware.
func (siw *ServerInterfaceWrapper) ProcessJSON(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ProcessJSON)
}

// ProcessBatch operation middleware.
func (siw *ServerInterfaceWrapper) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ProcessBatch)
}

// GetUpload operation middleware.
func (siw *ServerInterfaceWrapper) GetUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetUpload(w, r, id)
	})
}

// DeleteUpload operation middleware.
func (siw *ServerInterfaceWrapper) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteUpload(w, r, id)
	})
}

// GetUploadPDF operation middleware.
func (siw *ServerInterfaceWrapper) GetUploadPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetUploadPDF(w, r, id)
	})
}

// GetUploadJSON operation middleware.
func (siw *ServerInterfaceWrapper) GetUploadJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetUploadJSON(w, r, id)
	})
}

// MatchUpload operation middleware.
func (siw *ServerInterfaceWrapper) MatchUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}

	var params MatchUploadParams
	query := r.URL.Query()

	if _, found := query["q"]; !found {
		siw.ErrorHandlerFunc(w, r, &RequiredParamError{ParamName: "q"})
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "q", query, &params.Q); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "scope", query, &params.Scope); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "scope", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.MatchUpload(w, r, id, params)
	})
}

// HealthCheck operation middleware.
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.HealthCheck)
}

// Metrics operation middleware.
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Metrics)
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates an http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions registers every route on options.BaseRouter (a new router if nil).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	base := options.BaseURL
	r.Group(func(r chi.Router) {
		r.Post(base+"/pdf/upload", wrapper.UploadPDF)
		r.Post(base+"/pdf/process-json", wrapper.ProcessJSON)
		r.Post(base+"/pdf/process-batch", wrapper.ProcessBatch)
		r.Get(base+"/uploads/{id}", wrapper.GetUpload)
		r.Delete(base+"/uploads/{id}", wrapper.DeleteUpload)
		r.Get(base+"/uploads/{id}/pdf", wrapper.GetUploadPDF)
		r.Get(base+"/uploads/{id}/json", wrapper.GetUploadJSON)
		r.Get(base+"/uploads/{id}/matches", wrapper.MatchUpload)
		r.Get(base+"/health", wrapper.HealthCheck)
		r.Get(base+"/metrics", wrapper.Metrics)
	})
	return r
}
