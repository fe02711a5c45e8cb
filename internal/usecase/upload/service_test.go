package upload

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagehighlight/internal/domain"
	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
	"github.com/kailas-cloud/pagehighlight/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterHighlightMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type stored struct {
	u    domupload.Upload
	pdf  []byte
	json []byte
}

type mockRepo struct {
	items   map[string]stored
	saveErr error
}

func newMockRepo() *mockRepo { return &mockRepo{items: map[string]stored{}} }

func (m *mockRepo) Save(_ context.Context, u domupload.Upload, pdf, ocrJSON []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[u.ID()] = stored{u: u, pdf: pdf, json: ocrJSON}
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domupload.Upload, error) {
	it, ok := m.items[id]
	if !ok {
		return domupload.Upload{}, domain.ErrUploadNotFound
	}
	return it.u, nil
}

func (m *mockRepo) PDF(_ context.Context, id string) ([]byte, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrUploadNotFound
	}
	return it.pdf, nil
}

func (m *mockRepo) JSON(_ context.Context, id string) ([]byte, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrUploadNotFound
	}
	return it.json, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func newTestService(repo Repository) *Service {
	svc := New(repo, zap.NewNop())
	svc.newID = func() string { return "fixed-id" }
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

var validInput = Input{
	PDFName:    "/home/user/scan.pdf",
	PDF:        []byte("%PDF-1.7"),
	JSONName:   "scan.json",
	JSON:       []byte(`{"pages":[]}`),
	SearchText: "red fox",
}

// --- Tests ---

func TestSave_Success(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	okBefore := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("ok"))

	res, err := svc.Save(context.Background(), validInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u := res.Upload
	if u.ID() != "fixed-id" || u.PDFURL() != "/uploads/fixed-id/pdf" {
		t.Errorf("upload = %+v", u)
	}
	if u.PDFName() != "scan.pdf" {
		t.Errorf("pdf name = %q, want sanitized base name", u.PDFName())
	}
	if u.SearchText() != "red fox" || u.CreatedAt() != 1700000000000 {
		t.Errorf("upload = %+v", u)
	}
	if res.JSON != `{"pages":[]}` {
		t.Errorf("json echo = %q", res.JSON)
	}
	if _, ok := repo.items["fixed-id"]; !ok {
		t.Error("upload not stored")
	}
	if d := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("ok")) - okBefore; d != 1 {
		t.Errorf("uploads_total{ok} delta = %v", d)
	}
}

func TestSave_MissingFiles(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"no pdf", Input{JSON: []byte("{}")}},
		{"no json", Input{PDF: []byte("%PDF")}},
		{"neither", Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMockRepo())
			_, err := svc.Save(context.Background(), tt.in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSave_RepoError(t *testing.T) {
	repo := newMockRepo()
	repo.saveErr = errors.New("disk full")
	svc := newTestService(repo)

	_, err := svc.Save(context.Background(), validInput)
	if err == nil || errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestSave_RealIDs(t *testing.T) {
	svc := New(newMockRepo(), nil)

	a, err := svc.Save(context.Background(), validInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := svc.Save(context.Background(), validInput)
	if a.Upload.ID() == b.Upload.ID() {
		t.Errorf("ids should differ, both %q", a.Upload.ID())
	}
	if err := domupload.ValidateID(a.Upload.ID()); err != nil {
		t.Errorf("generated id %q invalid: %v", a.Upload.ID(), err)
	}
}

func TestGetPDFJSON(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()
	if _, err := svc.Save(ctx, validInput); err != nil {
		t.Fatal(err)
	}

	u, pdf, err := svc.PDF(ctx, "fixed-id")
	if err != nil || string(pdf) != "%PDF-1.7" || u.PDFName() != "scan.pdf" {
		t.Errorf("PDF = %+v %q %v", u, pdf, err)
	}
	js, err := svc.JSON(ctx, "fixed-id")
	if err != nil || string(js) != `{"pages":[]}` {
		t.Errorf("JSON = %q %v", js, err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	for _, id := range []string{"missing", "", "../../x"} {
		if _, err := svc.Get(ctx, id); !errors.Is(err, domain.ErrUploadNotFound) {
			t.Errorf("Get(%q) = %v", id, err)
		}
		if _, _, err := svc.PDF(ctx, id); !errors.Is(err, domain.ErrUploadNotFound) {
			t.Errorf("PDF(%q) = %v", id, err)
		}
		if _, err := svc.JSON(ctx, id); !errors.Is(err, domain.ErrUploadNotFound) {
			t.Errorf("JSON(%q) = %v", id, err)
		}
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	if _, err := svc.Save(ctx, validInput); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, "fixed-id"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "fixed-id"); !errors.Is(err, domain.ErrUploadNotFound) {
		t.Errorf("second Delete = %v", err)
	}
}
