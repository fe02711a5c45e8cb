package pagehighlight

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pagehighlight/internal/db"
	dbBadger "github.com/kailas-cloud/pagehighlight/internal/db/badger"
	dbRedis "github.com/kailas-cloud/pagehighlight/internal/db/redis"
	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
	uploadrepo "github.com/kailas-cloud/pagehighlight/internal/repository/upload"
	highlightuc "github.com/kailas-cloud/pagehighlight/internal/usecase/highlight"
	uploaduc "github.com/kailas-cloud/pagehighlight/internal/usecase/upload"
)

const defaultReadinessTimeout = 10 * time.Second

// Upload is stored upload metadata.
type Upload = domupload.Upload

// BatchItem is one query's outcome from MatchBatch, in query order.
type BatchItem = highlightuc.BatchItem

// UploadInput is a PDF and its OCR JSON to store.
type UploadInput = uploaduc.Input

// Client stores (PDF, OCR JSON) pairs and searches them.
type Client struct {
	store     db.Store
	uploads   *uploaduc.Service
	highlight *highlightuc.Service
}

// NewClient opens the configured store. Without a store option it keeps
// uploads in memory.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		driver:    driverMemory,
		keyPrefix: "pagehighlight:",
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("pagehighlight: store not ready: %w", err)
	}

	return wireClient(store, cfg)
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("pagehighlight: create redis store: %w", err)
		}
		return s, nil
	case driverBadger, driverMemory:
		s, err := dbBadger.Open(dbBadger.Config{
			Path:     cfg.path,
			InMemory: cfg.driver == driverMemory,
			Logger:   cfg.logger.Named("badger"),
		})
		if err != nil {
			return nil, fmt.Errorf("pagehighlight: open badger store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("pagehighlight: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	uploads := uploaduc.New(uploadrepo.New(store, cfg.keyPrefix, cfg.uploadTTL), cfg.logger)

	hl, err := highlightuc.New(uploads, cfg.poolSize, cfg.logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("pagehighlight: %w", err)
	}
	if cfg.maxBatchSize > 0 {
		hl.WithMaxBatchSize(cfg.maxBatchSize)
	}

	return &Client{store: store, uploads: uploads, highlight: hl}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	c.highlight.Close()
	c.store.Close()
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Upload stores both files under a new ID. Both files are required.
func (c *Client) Upload(ctx context.Context, in UploadInput) (Upload, error) {
	res, err := c.uploads.Save(ctx, in)
	if err != nil {
		return Upload{}, err
	}
	return res.Upload, nil
}

// Get returns upload metadata; unknown IDs report ErrUploadNotFound.
func (c *Client) Get(ctx context.Context, id string) (Upload, error) {
	return c.uploads.Get(ctx, id)
}

// PDF returns the stored PDF bytes.
func (c *Client) PDF(ctx context.Context, id string) ([]byte, error) {
	_, data, err := c.uploads.PDF(ctx, id)
	return data, err
}

// Delete removes an upload.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.uploads.Delete(ctx, id)
}

// Match searches the OCR JSON of a stored upload.
func (c *Client) Match(ctx context.Context, id, searchText string, opts ...Option) (Outcome, error) {
	return c.highlight.ProcessUpload(ctx, id, searchText, newConfig(opts).scope)
}

// MatchBatch decodes data once and runs every query against it on the worker pool.
func (c *Client) MatchBatch(ctx context.Context, data []byte, queries []string, opts ...Option) ([]BatchItem, error) {
	return c.highlight.ProcessBatch(ctx, data, queries, newConfig(opts).scope)
}
