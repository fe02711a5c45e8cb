// Package ocr holds the typed page/word model produced by OCR decoding.
package ocr

// PolygonSize is the number of coordinates in a word quadrilateral.
const PolygonSize = 8

// Polygon is a word quadrilateral (x0,y0,x1,y1,x2,y2,x3,y3) in page-space units.
// Corners are in OCR order, not necessarily axis-aligned or clockwise.
type Polygon [PolygonSize]float64

// Xs returns the four x-coordinates.
func (p Polygon) Xs() [4]float64 { return [4]float64{p[0], p[2], p[4], p[6]} }

// Ys returns the four y-coordinates.
func (p Polygon) Ys() [4]float64 { return [4]float64{p[1], p[3], p[5], p[7]} }

// Span locates a word in the OCR content string.
type Span struct {
	Offset int
	Length int
}

// Word is a recognized word in reading order.
type Word struct {
	Content    string
	Polygon    Polygon
	Confidence float64
	Span       Span
}

// Page is a single OCR page. Number is 1-based.
type Page struct {
	Number int
	Width  float64
	Height float64
	Unit   string
	Words  []Word
}

// Document is an ordered list of pages.
type Document struct {
	Pages []Page
}

// WordCount returns the total number of words across all pages.
func (d Document) WordCount() int {
	n := 0
	for i := range d.Pages {
		n += len(d.Pages[i].Words)
	}
	return n
}

// IsEmpty reports whether the document has no pages.
func (d Document) IsEmpty() bool { return len(d.Pages) == 0 }
