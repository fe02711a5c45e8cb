package sdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	badgerdb "github.com/kailas-cloud/pagehighlight/internal/db/badger"
	uploadrepo "github.com/kailas-cloud/pagehighlight/internal/repository/upload"
	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
	chiTransport "github.com/kailas-cloud/pagehighlight/internal/transport/chi"
	healthuc "github.com/kailas-cloud/pagehighlight/internal/usecase/health"
	highlightuc "github.com/kailas-cloud/pagehighlight/internal/usecase/highlight"
	uploaduc "github.com/kailas-cloud/pagehighlight/internal/usecase/upload"
)

const foxDoc = `{"analyzeResult":{"pages":[
	{"pageNumber":1,"width":612,"height":792,"words":[
		{"content":"The","polygon":[0,0,10,0,10,10,0,10]},
		{"content":"red","polygon":[10,0,20,0,20,10,10,10]},
		{"content":"fox","polygon":[20,0,30,0,30,10,20,10]},
		{"content":"and","polygon":[30,0,40,0,40,10,30,10]},
		{"content":"red","polygon":[40,0,50,0,50,10,40,10]},
		{"content":"fox.","polygon":[50,0,60,0,60,10,50,10]}
	]}
]}}`

type testServer struct {
	url   string
	store *badgerdb.Store
}

// newTestServer serves the full API router on an in-memory store.
func newTestServer(t *testing.T, apiKeys ...string) *testServer {
	t.Helper()

	store, err := badgerdb.Open(badgerdb.Config{InMemory: true})
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(store.Close)

	uploads := uploaduc.New(uploadrepo.New(store, "sdk:", time.Hour), zap.NewNop())
	hl, err := highlightuc.New(uploads, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("new highlight: %v", err)
	}
	hl.WithMaxBatchSize(3)
	t.Cleanup(hl.Close)

	srv := chiTransport.NewServer(hl, uploads, healthuc.New(store, time.Second), 0, zap.NewNop())

	r := chi.NewRouter()
	r.Use(chiTransport.BearerAuthMiddleware(apiKeys))
	gen.HandlerWithOptions(srv, gen.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(gen.ErrorResponse{
				Code:    gen.ErrorResponseCodeBadRequest,
				Message: err.Error(),
			})
		},
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return &testServer{url: ts.URL, store: store}
}

func newTestClient(t *testing.T, ts *testServer, opts ...Option) *Client {
	t.Helper()
	c, err := New(ts.url, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}
