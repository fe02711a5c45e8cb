package highlight

import "context"

// UploadReader loads the OCR JSON of a stored upload.
type UploadReader interface {
	JSON(ctx context.Context, id string) ([]byte, error)
}
