package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
)

// ProcessJSON searches an inline OCR document.
func (c *Client) ProcessJSON(ctx context.Context, req MatchRequest) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("process_json", start, err) }()

	status, data, err := c.sendJSON(ctx, http.MethodPost, "/pdf/process-json", gen.ProcessJSONRequest{
		JSON:       gen.OCRDocument(req.JSON),
		SearchText: req.SearchText,
		Scope:      c.scopeParam(req.Scope),
	})
	if err != nil {
		return Result{}, fmt.Errorf("process json: %w", err)
	}
	res, err = decodeOutcome(status, data)
	if err != nil {
		return Result{}, fmt.Errorf("process json: %w", err)
	}
	return res, nil
}

// ProcessBatch runs every query against one OCR document.
// Items come back in the order of req.Queries.
func (c *Client) ProcessBatch(ctx context.Context, req BatchRequest) (items []BatchItem, err error) {
	start := time.Now()
	defer func() { c.obs.observe("process_batch", start, err) }()

	status, data, err := c.sendJSON(ctx, http.MethodPost, "/pdf/process-batch", gen.ProcessBatchRequest{
		JSON:    gen.OCRDocument(req.JSON),
		Queries: req.Queries,
		Scope:   c.scopeParam(req.Scope),
	})
	if err != nil {
		return nil, fmt.Errorf("process batch: %w", err)
	}

	var resp gen.BatchResponse
	if err = decodeJSON(status, data, &resp); err != nil {
		return nil, fmt.Errorf("process batch: %w", err)
	}

	items = make([]BatchItem, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = BatchItem{
			SearchText: it.SearchText,
			Result:     Result{Status: Status(it.Status), Matches: fromMatchItems(it.Items)},
		}
	}
	return items, nil
}

// MatchUpload searches the OCR JSON of a stored upload.
// An empty scope falls back to WithScope, then to the server default.
func (c *Client) MatchUpload(ctx context.Context, id, searchText string, scope Scope) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match_upload", start, err) }()

	q := url.Values{"q": {searchText}}
	if s := c.scopeParam(scope); s != nil {
		q.Set("scope", *s)
	}

	status, data, err := c.send(ctx, http.MethodGet, uploadPath(id)+"/matches?"+q.Encode(), "", nil)
	if err != nil {
		return Result{}, fmt.Errorf("match upload: %w", err)
	}
	res, err = decodeOutcome(status, data)
	if err != nil {
		return Result{}, fmt.Errorf("match upload: %w", err)
	}
	return res, nil
}
