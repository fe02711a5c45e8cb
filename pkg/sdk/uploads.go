package sdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
)

const (
	defaultPDFName  = "document.pdf"
	defaultJSONName = "document.json"
)

// Upload stores a PDF and its OCR JSON on the server.
func (c *Client) Upload(ctx context.Context, in UploadInput) (res UploadResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("upload", start, err) }()

	body, contentType, err := uploadForm(in)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload: %w", err)
	}

	status, data, err := c.send(ctx, http.MethodPost, "/pdf/upload", contentType, body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload: %w", err)
	}

	var resp gen.UploadResponse
	if err = decodeJSON(status, data, &resp); err != nil {
		return UploadResult{}, fmt.Errorf("upload: %w", err)
	}
	return UploadResult{
		ID:         resp.ID,
		PDFURL:     resp.PDFURL,
		JSON:       resp.JSON,
		SearchText: resp.SearchString,
	}, nil
}

func uploadForm(in UploadInput) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	files := []struct {
		field, name, fallback string
		data                  []byte
	}{
		{"pdfFile", in.PDFName, defaultPDFName, in.PDF},
		{"jsonFile", in.JSONName, defaultJSONName, in.JSON},
	}
	for _, f := range files {
		if len(f.data) == 0 {
			continue
		}
		name := f.name
		if name == "" {
			name = f.fallback
		}
		fw, err := mw.CreateFormFile(f.field, name)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(f.data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.WriteField("searchText", in.SearchText); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// GetUpload returns upload metadata.
func (c *Client) GetUpload(ctx context.Context, id string) (up Upload, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_upload", start, err) }()

	status, data, err := c.send(ctx, http.MethodGet, uploadPath(id), "", nil)
	if err != nil {
		return Upload{}, fmt.Errorf("get upload: %w", err)
	}
	var resp gen.Upload
	if err = decodeJSON(status, data, &resp); err != nil {
		return Upload{}, fmt.Errorf("get upload: %w", err)
	}
	return fromUpload(resp), nil
}

// PDF returns the stored PDF bytes.
func (c *Client) PDF(ctx context.Context, id string) (data []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_pdf", start, err) }()

	data, err = c.raw(ctx, uploadPath(id)+"/pdf")
	if err != nil {
		return nil, fmt.Errorf("get pdf: %w", err)
	}
	return data, nil
}

// JSON returns the stored OCR JSON bytes.
func (c *Client) JSON(ctx context.Context, id string) (data []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_json", start, err) }()

	data, err = c.raw(ctx, uploadPath(id)+"/json")
	if err != nil {
		return nil, fmt.Errorf("get json: %w", err)
	}
	return data, nil
}

// DeleteUpload removes an upload. Deleting a missing upload reports ErrUploadNotFound.
func (c *Client) DeleteUpload(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete_upload", start, err) }()

	status, data, err := c.send(ctx, http.MethodDelete, uploadPath(id), "", nil)
	if err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return fmt.Errorf("delete upload: %w", apiError(status, data))
	}
	return nil
}

func (c *Client) raw(ctx context.Context, path string) ([]byte, error) {
	status, data, err := c.send(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apiError(status, data)
	}
	return data, nil
}
