// Package sdk is a Go client for the pagehighlight HTTP API.
//
//	client, _ := sdk.New("http://localhost:8080", sdk.WithAPIKey(key))
//	res, _ := client.ProcessJSON(ctx, sdk.MatchRequest{JSON: ocr, SearchText: "red fox"})
//	if res.Status == sdk.StatusMatches {
//	    for _, m := range res.Matches {
//	        draw(m.PageNumber, m.Rect)
//	    }
//	}
//
// Uploads keep a PDF and its OCR JSON on the server so later searches only send
// the query:
//
//	up, _ := client.Upload(ctx, sdk.UploadInput{PDF: pdf, JSON: ocr})
//	res, _ := client.MatchUpload(ctx, up.ID, "red fox", sdk.ScopeAll)
//
// Search outcomes are values: not found and invalid input come back as a Result
// with a nil error. Result.Err maps them to ErrNotFound and ErrInvalidInput.
// Every other failure is an *APIError that unwraps to one of the sentinels.
package sdk
