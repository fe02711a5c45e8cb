package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordingServer struct {
	op     string
	id     UploadID
	params MatchUploadParams
}

func (s *recordingServer) UploadPDF(http.ResponseWriter, *http.Request)    { s.op = "UploadPDF" }
func (s *recordingServer) ProcessJSON(http.ResponseWriter, *http.Request)  { s.op = "ProcessJSON" }
func (s *recordingServer) ProcessBatch(http.ResponseWriter, *http.Request) { s.op = "ProcessBatch" }
func (s *recordingServer) HealthCheck(http.ResponseWriter, *http.Request)  { s.op = "HealthCheck" }
func (s *recordingServer) Metrics(http.ResponseWriter, *http.Request)      { s.op = "Metrics" }

func (s *recordingServer) GetUpload(_ http.ResponseWriter, _ *http.Request, id UploadID) {
	s.op, s.id = "GetUpload", id
}

func (s *recordingServer) DeleteUpload(_ http.ResponseWriter, _ *http.Request, id UploadID) {
	s.op, s.id = "DeleteUpload", id
}

func (s *recordingServer) GetUploadPDF(_ http.ResponseWriter, _ *http.Request, id UploadID) {
	s.op, s.id = "GetUploadPDF", id
}

func (s *recordingServer) GetUploadJSON(_ http.ResponseWriter, _ *http.Request, id UploadID) {
	s.op, s.id = "GetUploadJSON", id
}

func (s *recordingServer) MatchUpload(_ http.ResponseWriter, _ *http.Request, id UploadID, p MatchUploadParams) {
	s.op, s.id, s.params = "MatchUpload", id, p
}

func TestHandler_Routes(t *testing.T) {
	tests := []struct {
		method, path string
		wantOp       string
		wantID       UploadID
	}{
		{http.MethodPost, "/pdf/upload", "UploadPDF", ""},
		{http.MethodPost, "/pdf/process-json", "ProcessJSON", ""},
		{http.MethodPost, "/pdf/process-batch", "ProcessBatch", ""},
		{http.MethodGet, "/uploads/u-1", "GetUpload", "u-1"},
		{http.MethodDelete, "/uploads/u-1", "DeleteUpload", "u-1"},
		{http.MethodGet, "/uploads/u-2/pdf", "GetUploadPDF", "u-2"},
		{http.MethodGet, "/uploads/u-3/json", "GetUploadJSON", "u-3"},
		{http.MethodGet, "/uploads/u-4/matches?q=x", "MatchUpload", "u-4"},
		{http.MethodGet, "/health", "HealthCheck", ""},
		{http.MethodGet, "/metrics", "Metrics", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			srv := &recordingServer{}
			h := Handler(srv)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, http.NoBody))

			if srv.op != tt.wantOp {
				t.Errorf("op = %q, want %q", srv.op, tt.wantOp)
			}
			if srv.id != tt.wantID {
				t.Errorf("id = %q, want %q", srv.id, tt.wantID)
			}
		})
	}
}

func TestMatchUpload_QueryBinding(t *testing.T) {
	srv := &recordingServer{}
	h := Handler(srv)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/abc/matches?q=red+fox&scope=all", http.NoBody))

	if srv.params.Q != "red fox" {
		t.Errorf("q = %q", srv.params.Q)
	}
	if srv.params.Scope == nil || *srv.params.Scope != "all" {
		t.Errorf("scope = %v", srv.params.Scope)
	}

	srv = &recordingServer{}
	h = Handler(srv)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/uploads/abc/matches?q=fox", http.NoBody))
	if srv.params.Scope != nil {
		t.Errorf("absent scope bound as %q", *srv.params.Scope)
	}
}

func TestMatchUpload_MissingQuery(t *testing.T) {
	srv := &recordingServer{}
	var gotErr error
	h := HandlerWithOptions(srv, ChiServerOptions{
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusBadRequest)
		},
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/abc/matches", http.NoBody))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var required *RequiredParamError
	if !errors.As(gotErr, &required) || required.ParamName != "q" {
		t.Errorf("err = %v", gotErr)
	}
	if srv.op != "" {
		t.Errorf("handler called: %s", srv.op)
	}
}

func TestOCRDocument_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object", `{"json":{"pages":[]}}`, `{"pages":[]}`},
		{"string", `{"json":"{\"pages\":[]}"}`, `{"pages":[]}`},
		{"null", `{"json":null}`, ``},
		{"absent", `{}`, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ProcessJSONRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if string(req.JSON) != tt.want {
				t.Errorf("json = %q, want %q", req.JSON, tt.want)
			}
		})
	}
}

func TestOCRDocument_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  OCRDocument
		want string
	}{
		{"object", OCRDocument(`{"pages":[]}`), `{"json":{"pages":[]},"searchText":""}`},
		{"not json", OCRDocument(`{oops`), `{"json":"{oops","searchText":""}`},
		{"empty", nil, `{"json":null,"searchText":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(ProcessJSONRequest{JSON: tt.doc})
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}
