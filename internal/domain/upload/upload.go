package upload

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9-]{1,64}$`)

// Upload is a stored (PDF, OCR JSON) pair plus the search text it was submitted with.
// Immutable value object; file contents live in storage, not here.
type Upload struct {
	id         string
	pdfName    string
	jsonName   string
	searchText string
	pdfSize    int64
	jsonSize   int64
	createdAt  int64
}

// ValidateID checks an upload identifier: 1-64 chars of [a-zA-Z0-9-].
func ValidateID(id string) error {
	if !idRegex.MatchString(id) {
		return fmt.Errorf("upload id must be 1-64 alphanumeric characters or hyphens")
	}
	return nil
}

// New validates and creates an Upload. File names are sanitized to their base name.
func New(id, pdfName, jsonName, searchText string, pdfSize, jsonSize, createdAt int64) (Upload, error) {
	if err := ValidateID(id); err != nil {
		return Upload{}, err
	}
	if pdfSize <= 0 {
		return Upload{}, fmt.Errorf("pdf file is empty")
	}
	if jsonSize <= 0 {
		return Upload{}, fmt.Errorf("json file is empty")
	}
	return Upload{
		id:         id,
		pdfName:    SanitizeFileName(pdfName, "document.pdf"),
		jsonName:   SanitizeFileName(jsonName, "document.json"),
		searchText: searchText,
		pdfSize:    pdfSize,
		jsonSize:   jsonSize,
		createdAt:  createdAt,
	}, nil
}

// Reconstruct hydrates an Upload from storage without validation.
func Reconstruct(id, pdfName, jsonName, searchText string, pdfSize, jsonSize, createdAt int64) Upload {
	return Upload{
		id:         id,
		pdfName:    pdfName,
		jsonName:   jsonName,
		searchText: searchText,
		pdfSize:    pdfSize,
		jsonSize:   jsonSize,
		createdAt:  createdAt,
	}
}

// SanitizeFileName keeps only the base name of a client-supplied file name
// and drops control characters. Returns fallback when nothing usable remains.
func SanitizeFileName(name, fallback string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return fallback
	}
	return name
}

func (u Upload) ID() string         { return u.id }
func (u Upload) PDFName() string    { return u.pdfName }
func (u Upload) JSONName() string   { return u.jsonName }
func (u Upload) SearchText() string { return u.searchText }
func (u Upload) PDFSize() int64     { return u.pdfSize }
func (u Upload) JSONSize() int64    { return u.jsonSize }
func (u Upload) CreatedAt() int64   { return u.createdAt }

// PDFURL is the relative URL serving the stored PDF.
func (u Upload) PDFURL() string { return "/uploads/" + u.id + "/pdf" }
