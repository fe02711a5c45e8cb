package ocrjson

import "github.com/kailas-cloud/pagehighlight/internal/domain/ocr"

type envelopeDTO struct {
	Status        string            `json:"status,omitempty"`
	Pages         *[]pageDTO        `json:"pages"`
	AnalyzeResult *analyzeResultDTO `json:"analyzeResult"`
}

type analyzeResultDTO struct {
	APIVersion string     `json:"apiVersion,omitempty"`
	ModelID    string     `json:"modelId,omitempty"`
	Pages      *[]pageDTO `json:"pages"`
}

func (e *envelopeDTO) pages() *[]pageDTO {
	if e.Pages != nil {
		return e.Pages
	}
	if e.AnalyzeResult != nil {
		return e.AnalyzeResult.Pages
	}
	return nil
}

type pageDTO struct {
	PageNumber *int      `json:"pageNumber"`
	Width      *float64  `json:"width"`
	Height     *float64  `json:"height"`
	Unit       string    `json:"unit,omitempty"`
	Angle      float64   `json:"angle,omitempty"`
	Words      []wordDTO `json:"words"`
}

type wordDTO struct {
	Content    string    `json:"content"`
	Polygon    []float64 `json:"polygon"`
	Confidence float64   `json:"confidence,omitempty"`
	Span       spanDTO   `json:"span"`
}

type spanDTO struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

func (p *pageDTO) toDomain(idx int) (ocr.Page, error) {
	switch {
	case p.PageNumber == nil:
		return ocr.Page{}, malformed("page %d: missing pageNumber", idx)
	case p.Width == nil:
		return ocr.Page{}, malformed("page %d: missing width", idx)
	case p.Height == nil:
		return ocr.Page{}, malformed("page %d: missing height", idx)
	}

	words := make([]ocr.Word, 0, len(p.Words))
	for wi, w := range p.Words {
		if len(w.Polygon) != ocr.PolygonSize {
			return ocr.Page{}, malformed("page %d word %d: polygon has %d coordinates, want %d",
				*p.PageNumber, wi, len(w.Polygon), ocr.PolygonSize)
		}
		var poly ocr.Polygon
		copy(poly[:], w.Polygon)
		words = append(words, ocr.Word{
			Content:    w.Content,
			Polygon:    poly,
			Confidence: w.Confidence,
			Span:       ocr.Span{Offset: w.Span.Offset, Length: w.Span.Length},
		})
	}

	return ocr.Page{
		Number: *p.PageNumber,
		Width:  *p.Width,
		Height: *p.Height,
		Unit:   p.Unit,
		Words:  words,
	}, nil
}
