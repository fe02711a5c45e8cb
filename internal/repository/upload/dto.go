package upload

import (
	"encoding/json"
	"fmt"

	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
)

// metaRow is the JSON-serializable upload metadata.
type metaRow struct {
	ID         string `json:"id"`
	PDFName    string `json:"pdf_name"`
	JSONName   string `json:"json_name"`
	SearchText string `json:"search_text"`
	PDFSize    int64  `json:"pdf_size"`
	JSONSize   int64  `json:"json_size"`
	CreatedAt  int64  `json:"created_at"`
}

func uploadToMeta(u domupload.Upload) ([]byte, error) {
	data, err := json.Marshal(metaRow{
		ID:         u.ID(),
		PDFName:    u.PDFName(),
		JSONName:   u.JSONName(),
		SearchText: u.SearchText(),
		PDFSize:    u.PDFSize(),
		JSONSize:   u.JSONSize(),
		CreatedAt:  u.CreatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal upload meta: %w", err)
	}
	return data, nil
}

func uploadFromMeta(data []byte) (domupload.Upload, error) {
	var row metaRow
	if err := json.Unmarshal(data, &row); err != nil {
		return domupload.Upload{}, fmt.Errorf("unmarshal upload meta: %w", err)
	}
	return domupload.Reconstruct(
		row.ID, row.PDFName, row.JSONName, row.SearchText,
		row.PDFSize, row.JSONSize, row.CreatedAt,
	), nil
}
