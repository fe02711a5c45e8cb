package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/pagehighlight/internal/db"
	"github.com/kailas-cloud/pagehighlight/internal/domain"
	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
)

// store is the consumer interface for uploads (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMulti(ctx context.Context, items []db.KVItem, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Repo implements usecase/upload.Repository.
// Each upload occupies three keys: {prefix}upload:{id}:meta, :pdf and :json.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates an upload repository. ttl <= 0 keeps uploads forever.
func New(s store, prefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, prefix: prefix, ttl: ttl}
}

// Save stores metadata and both files with the same TTL.
func (r *Repo) Save(ctx context.Context, u domupload.Upload, pdf, ocrJSON []byte) error {
	meta, err := uploadToMeta(u)
	if err != nil {
		return err
	}

	items := []db.KVItem{
		{Key: r.pdfKey(u.ID()), Value: pdf},
		{Key: r.jsonKey(u.ID()), Value: ocrJSON},
		// meta last: Get treats a present meta key as a complete upload
		{Key: r.metaKey(u.ID()), Value: meta},
	}
	if err := r.store.SetMulti(ctx, items, r.ttl); err != nil {
		return fmt.Errorf("save upload %s: %w", u.ID(), err)
	}
	return nil
}

// Get returns upload metadata.
func (r *Repo) Get(ctx context.Context, id string) (domupload.Upload, error) {
	data, err := r.get(ctx, r.metaKey(id))
	if err != nil {
		return domupload.Upload{}, fmt.Errorf("get upload %s: %w", id, err)
	}
	return uploadFromMeta(data)
}

// PDF returns the stored PDF bytes.
func (r *Repo) PDF(ctx context.Context, id string) ([]byte, error) {
	data, err := r.get(ctx, r.pdfKey(id))
	if err != nil {
		return nil, fmt.Errorf("get upload pdf %s: %w", id, err)
	}
	return data, nil
}

// JSON returns the stored OCR JSON bytes.
func (r *Repo) JSON(ctx context.Context, id string) ([]byte, error) {
	data, err := r.get(ctx, r.jsonKey(id))
	if err != nil {
		return nil, fmt.Errorf("get upload json %s: %w", id, err)
	}
	return data, nil
}

// Delete removes all keys of an upload. Missing uploads are not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.metaKey(id), r.pdfKey(id), r.jsonKey(id)); err != nil {
		return fmt.Errorf("delete upload %s: %w", id, err)
	}
	return nil
}

func (r *Repo) get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, domain.ErrUploadNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Repo) metaKey(id string) string { return r.prefix + "upload:" + id + ":meta" }
func (r *Repo) pdfKey(id string) string  { return r.prefix + "upload:" + id + ":pdf" }
func (r *Repo) jsonKey(id string) string { return r.prefix + "upload:" + id + ":json" }
