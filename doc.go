// Package pagehighlight finds search phrases in OCR output and returns the
// page-space rectangles to highlight.
//
// A Document is a list of pages, each an ordered list of words with an
// 8-number polygon. Find tokenizes the search text, walks the pages in order
// and merges the polygons of every matched word run into one axis-aligned box.
//
//	doc, err := pagehighlight.Decode(ocrJSON)
//	if err != nil {
//	    return err // empty input or invalid JSON
//	}
//	out := pagehighlight.Find("red fox", doc, pagehighlight.WithScope(pagehighlight.ScopeAll))
//	switch out.Kind() {
//	case pagehighlight.KindMatches:
//	    for _, m := range out.Matches() {
//	        fmt.Println(m.PageNumber(), m.Rect().Array())
//	    }
//	case pagehighlight.KindNotFound:
//	    // scanned everything, nothing matched
//	case pagehighlight.KindInvalidInput:
//	    // the search text has no searchable characters
//	}
//
// # Scopes
//
// ScopeCompat, the default, reports every occurrence of a single-word query
// but only the first occurrence of a multi-word phrase. ScopeAll reports every
// occurrence of both; ScopeFirst stops at the first hit of either.
package pagehighlight
