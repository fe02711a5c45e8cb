package ocrjson

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/pagehighlight/internal/domain"
	"github.com/kailas-cloud/pagehighlight/internal/domain/ocr"
)

const flatDoc = `{
  "pages": [
    {
      "pageNumber": 1,
      "width": 8.5,
      "height": 11,
      "unit": "inch",
      "words": [
        {"content": "Invoice", "polygon": [1,1,2,1,2,1.5,1,1.5], "confidence": 0.99, "span": {"offset": 0, "length": 7}},
        {"content": "Total:", "polygon": [1,2,2,2,2,2.5,1,2.5], "confidence": 0.95, "span": {"offset": 8, "length": 6}}
      ]
    },
    {"pageNumber": 2, "width": 8.5, "height": 11, "words": []}
  ]
}`

const azureDoc = `{
  "status": "succeeded",
  "analyzeResult": {
    "apiVersion": "2023-07-31",
    "modelId": "prebuilt-read",
    "pages": [
      {"pageNumber": 1, "width": 612, "height": 792, "unit": "pixel",
       "words": [{"content": "hello", "polygon": [10,20,40,20,40,30,10,30]}]}
    ]
  }
}`

func TestDecode_FlatEnvelope(t *testing.T) {
	doc, err := Decode([]byte(flatDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
	p := doc.Pages[0]
	if p.Number != 1 || p.Width != 8.5 || p.Height != 11 || p.Unit != "inch" {
		t.Errorf("page header = %+v", p)
	}
	if len(p.Words) != 2 {
		t.Fatalf("words = %d, want 2", len(p.Words))
	}
	w := p.Words[1]
	if w.Content != "Total:" {
		t.Errorf("content = %q", w.Content)
	}
	want := ocr.Polygon{1, 2, 2, 2, 2, 2.5, 1, 2.5}
	if w.Polygon != want {
		t.Errorf("polygon = %v, want %v", w.Polygon, want)
	}
	if w.Confidence != 0.95 || w.Span != (ocr.Span{Offset: 8, Length: 6}) {
		t.Errorf("confidence/span = %v/%+v", w.Confidence, w.Span)
	}
	if doc.Pages[1].Number != 2 || len(doc.Pages[1].Words) != 0 {
		t.Errorf("second page = %+v", doc.Pages[1])
	}
}

func TestDecode_AnalyzeResultEnvelope(t *testing.T) {
	doc, err := Decode([]byte(azureDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.WordCount() != 1 || doc.Pages[0].Words[0].Content != "hello" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Pages[0].Width != 612 || doc.Pages[0].Height != 792 {
		t.Errorf("size = %vx%v", doc.Pages[0].Width, doc.Pages[0].Height)
	}
}

func TestDecode_EmptyPageList(t *testing.T) {
	doc, err := Decode([]byte(`{"pages": []}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !doc.IsEmpty() {
		t.Errorf("expected empty doc, got %+v", doc)
	}
}

func TestDecode_MissingWordsIsEmptyPage(t *testing.T) {
	doc, err := Decode([]byte(`{"pages": [{"pageNumber": 1, "width": 1, "height": 1}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0].Words) != 0 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestDecode_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t"},
		{"syntax", `{"pages": [`},
		{"garbage", `not json`},
		{"trailing comma", `{"pages": [],}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if errors.Is(err, domain.ErrMalformedDocument) {
				t.Error("invalid input must not be reported as malformed")
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no pages key", `{"content": "x"}`},
		{"null pages", `{"pages": null}`},
		{"analyzeResult without pages", `{"analyzeResult": {}}`},
		{"top-level array", `[1, 2]`},
		{"top-level null", `null`},
		{"pages not a list", `{"pages": "nope"}`},
		{"missing pageNumber", `{"pages": [{"width": 1, "height": 1, "words": []}]}`},
		{"missing width", `{"pages": [{"pageNumber": 1, "height": 1, "words": []}]}`},
		{"missing height", `{"pages": [{"pageNumber": 1, "width": 1, "words": []}]}`},
		{"short polygon", `{"pages": [{"pageNumber": 1, "width": 1, "height": 1,
			"words": [{"content": "a", "polygon": [0,0,1,0,1,1]}]}]}`},
		{"missing polygon", `{"pages": [{"pageNumber": 1, "width": 1, "height": 1,
			"words": [{"content": "a"}]}]}`},
		{"string coordinate", `{"pages": [{"pageNumber": 1, "width": 1, "height": 1,
			"words": [{"content": "a", "polygon": ["0",0,1,0,1,1,0,1]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			if !errors.Is(err, domain.ErrMalformedDocument) {
				t.Fatalf("err = %v, want ErrMalformedDocument", err)
			}
			var me *MalformedError
			if !errors.As(err, &me) || me.Reason == "" {
				t.Errorf("expected MalformedError with reason, got %v", err)
			}
		})
	}
}

func TestDecodeLenient(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc, rep, err := DecodeLenient([]byte(azureDoc))
		if err != nil || rep.Malformed || doc.WordCount() != 1 {
			t.Errorf("doc=%+v rep=%+v err=%v", doc, rep, err)
		}
	})
	t.Run("malformed recovers to empty", func(t *testing.T) {
		doc, rep, err := DecodeLenient([]byte(`{"foo": 1}`))
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if !rep.Malformed || rep.Reason != "missing page list" {
			t.Errorf("report = %+v", rep)
		}
		if !doc.IsEmpty() {
			t.Errorf("doc = %+v", doc)
		}
	})
	t.Run("syntax error still fails", func(t *testing.T) {
		_, _, err := DecodeLenient([]byte(`{`))
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("err = %v", err)
		}
	})
}
