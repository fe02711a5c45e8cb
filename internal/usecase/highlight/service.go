package highlight

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagehighlight/internal/domain"
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/match"
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/token"
	"github.com/kailas-cloud/pagehighlight/internal/domain/ocr"
	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
	"github.com/kailas-cloud/pagehighlight/internal/metrics"
	"github.com/kailas-cloud/pagehighlight/internal/ocrjson"
)

// DefaultMaxBatchSize is the maximum number of queries per batch request.
const DefaultMaxBatchSize = 100

// Request is a single highlight invocation.
type Request struct {
	JSON       []byte
	SearchText string
	Scope      match.Scope // empty = service default
}

// BatchItem is the outcome of one batch query, in request order.
type BatchItem struct {
	SearchText string
	Outcome    match.Outcome
}

// Service decodes OCR JSON and runs the matcher.
// Matching itself is sequential; independent batch queries run on a worker pool.
type Service struct {
	uploads      UploadReader
	pool         *ants.Pool
	logger       *zap.Logger
	defaultScope match.Scope
	maxBatchSize int
}

// New creates a highlight service with a worker pool of poolSize goroutines.
// uploads can be nil when stored uploads are not served.
func New(uploads UploadReader, poolSize int, logger *zap.Logger) (*Service, error) {
	if poolSize <= 0 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		uploads:      uploads,
		pool:         pool,
		logger:       logger,
		defaultScope: match.Compat,
		maxBatchSize: DefaultMaxBatchSize,
	}, nil
}

// WithDefaultScope sets the scope used when a request leaves it empty.
func (s *Service) WithDefaultScope(scope match.Scope) *Service {
	if scope.IsValid() {
		s.defaultScope = scope
	}
	return s
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Process decodes req.JSON and searches it for req.SearchText.
// Blank inputs and unparseable JSON yield an InvalidInput outcome, not an error;
// a document without a usable page list is searched as an empty document.
func (s *Service) Process(_ context.Context, req Request) (match.Outcome, error) {
	scope := s.resolveScope(req.Scope)
	start := time.Now()

	q := token.Parse(req.SearchText)
	if q.IsBlank() || len(bytes.TrimSpace(req.JSON)) == 0 {
		out := match.InvalidInput()
		s.observe(scope, out, time.Since(start))
		return out, nil
	}

	doc, ok := s.decode(req.JSON)
	if !ok {
		out := match.InvalidInput()
		s.observe(scope, out, time.Since(start))
		return out, nil
	}

	out := match.Find(q, doc, scope)
	s.observe(scope, out, time.Since(start))
	return out, nil
}

// ProcessUpload runs Process against the OCR JSON of a stored upload.
func (s *Service) ProcessUpload(ctx context.Context, id, searchText string, scope match.Scope) (match.Outcome, error) {
	if s.uploads == nil {
		return match.Outcome{}, fmt.Errorf("upload %s: %w", id, domain.ErrUploadNotFound)
	}
	if err := domupload.ValidateID(id); err != nil {
		return match.Outcome{}, fmt.Errorf("upload %q: %w", id, domain.ErrUploadNotFound)
	}

	data, err := s.uploads.JSON(ctx, id)
	if err != nil {
		return match.Outcome{}, fmt.Errorf("load upload json: %w", err)
	}

	return s.Process(ctx, Request{JSON: data, SearchText: searchText, Scope: scope})
}

// ProcessBatch decodes the document once and runs every query against it.
// Results are returned in the order of queries.
func (s *Service) ProcessBatch(
	ctx context.Context, data []byte, queries []string, scope match.Scope,
) ([]BatchItem, error) {
	if len(queries) == 0 {
		return nil, domain.NewInvalidInput("queries", "must not be empty")
	}
	if len(queries) > s.maxBatchSize {
		return nil, fmt.Errorf("%d queries exceeds limit %d: %w", len(queries), s.maxBatchSize, domain.ErrBatchTooLarge)
	}
	metrics.BatchQueries.Observe(float64(len(queries)))

	scope = s.resolveScope(scope)
	items := make([]BatchItem, len(queries))

	var doc ocr.Document
	docOK := len(bytes.TrimSpace(data)) > 0
	if docOK {
		doc, docOK = s.decode(data)
	}
	if !docOK {
		for i, text := range queries {
			items[i] = BatchItem{SearchText: text, Outcome: match.InvalidInput()}
			s.observe(scope, items[i].Outcome, 0)
		}
		return items, nil
	}

	var (
		wg        sync.WaitGroup
		submitErr error
	)
	for i, text := range queries {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		i, text := i, text
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			start := time.Now()
			q := token.Parse(text)
			out := match.Find(q, doc, scope)
			s.observe(scope, out, time.Since(start))
			items[i] = BatchItem{SearchText: text, Outcome: out}
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit query %d: %w", i, err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	return items, nil
}

// decode reports false when data is not valid JSON. Malformed documents are
// recovered as empty ones.
func (s *Service) decode(data []byte) (ocr.Document, bool) {
	doc, rep, err := ocrjson.DecodeLenient(data)
	if err != nil {
		s.logger.Debug("OCR JSON rejected", zap.Error(err))
		return ocr.Document{}, false
	}
	if rep.Malformed {
		metrics.MalformedDocumentsTotal.Inc()
		s.logger.Warn("Malformed OCR document searched as empty",
			zap.String("reason", rep.Reason),
			zap.Int("bytes", len(data)),
		)
	}
	return doc, true
}

func (s *Service) resolveScope(scope match.Scope) match.Scope {
	if scope == "" || !scope.IsValid() {
		return s.defaultScope
	}
	return scope
}

func (s *Service) observe(scope match.Scope, out match.Outcome, elapsed time.Duration) {
	st := out.Stats()
	metrics.MatchTotal.WithLabelValues(string(st.Mode), string(scope), string(out.Kind())).Inc()
	if out.Kind() != match.KindInvalidInput {
		metrics.WordsScanned.Observe(float64(st.WordsNormalized))
		metrics.MatchDuration.WithLabelValues(string(st.Mode)).Observe(elapsed.Seconds())
	}

	s.logger.Debug("Match completed",
		zap.String("mode", string(st.Mode)),
		zap.String("scope", string(scope)),
		zap.String("outcome", string(out.Kind())),
		zap.Int("matches", len(out.Matches())),
		zap.Int("pages_scanned", st.PagesScanned),
		zap.Int("words_normalized", st.WordsNormalized),
		zap.Duration("elapsed", elapsed),
	)
}
