package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/pagehighlight"
)

var (
	errNotFound     = errors.New("word not found")
	errInvalidInput = errors.New("invalid input")
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type matchOptions struct {
	jsonPath string
	text     string
	scope    string
	format   string
}

type report struct {
	Status  string       `json:"status" yaml:"status"`
	Message string       `json:"message,omitempty" yaml:"message,omitempty"`
	Items   []reportItem `json:"items" yaml:"items"`
	Stats   reportStats  `json:"stats" yaml:"stats"`
}

type reportItem struct {
	PageNumber int        `json:"pageNumber" yaml:"pageNumber"`
	PageWidth  float64    `json:"pageWidth" yaml:"pageWidth"`
	PageHeight float64    `json:"pageHeight" yaml:"pageHeight"`
	SearchText string     `json:"searchText" yaml:"searchText"`
	Polygon    [4]float64 `json:"polygon" yaml:"polygon,flow"`
	WordIndex  int        `json:"wordIndex" yaml:"wordIndex"`
	WordCount  int        `json:"wordCount" yaml:"wordCount"`
}

type reportStats struct {
	Mode            string `json:"mode" yaml:"mode"`
	PagesScanned    int    `json:"pagesScanned" yaml:"pagesScanned"`
	WordsNormalized int    `json:"wordsNormalized" yaml:"wordsNormalized"`
}

func newMatchCmd(a *app) *cobra.Command {
	var opts matchOptions
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Search an OCR JSON file",
		Long: `Search an OCR JSON file for a phrase and print every highlight rectangle.

The exit code is 0 when something matched and 1 when nothing matched or the
input was invalid. Use --json - to read the document from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMatch(cmd.InOrStdin(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "Path to the OCR JSON file, - for stdin (required)")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Search text (required)")
	cmd.Flags().StringVar(&opts.scope, "scope", string(pagehighlight.ScopeCompat), "Occurrences to report: compat, all, first")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json, yaml")
	_ = cmd.MarkFlagRequired("json")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func (a *app) runMatch(stdin io.Reader, opts matchOptions) error {
	scope := pagehighlight.Scope(opts.scope)
	if !scope.IsValid() {
		return fmt.Errorf("unknown scope %q", opts.scope)
	}
	if opts.format != formatJSON && opts.format != formatYAML {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	data, err := readInput(stdin, opts.jsonPath)
	if err != nil {
		return err
	}

	start := time.Now()
	out := a.search(opts.text, data, scope)
	a.log().Info("Match completed",
		zap.String("status", string(out.Kind())),
		zap.Int("matches", len(out.Matches())),
		zap.Int("pages_scanned", out.Stats().PagesScanned),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := writeReport(a.out, opts.format, toReport(out)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	switch out.Kind() {
	case pagehighlight.KindMatches:
		return nil
	case pagehighlight.KindNotFound:
		return errNotFound
	default:
		return errInvalidInput
	}
}

// search decodes strictly so malformed structure can be logged, then searches
// the recovered empty document like the service does.
func (a *app) search(text string, data []byte, scope pagehighlight.Scope) pagehighlight.Outcome {
	doc, err := pagehighlight.DecodeStrict(data)
	switch {
	case errors.Is(err, pagehighlight.ErrMalformedDocument):
		a.log().Warn("Malformed OCR document searched as empty", zap.Error(err))
		doc = pagehighlight.Document{}
	case err != nil:
		a.log().Debug("OCR JSON rejected", zap.Error(err))
		// Highlight reports undecodable input as InvalidInput.
		return pagehighlight.Highlight(text, nil)
	}
	return pagehighlight.Find(text, doc, pagehighlight.WithScope(scope))
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func toReport(out pagehighlight.Outcome) report {
	rep := report{
		Status: string(out.Kind()),
		Items:  make([]reportItem, 0, len(out.Matches())),
		Stats: reportStats{
			Mode:            string(out.Stats().Mode),
			PagesScanned:    out.Stats().PagesScanned,
			WordsNormalized: out.Stats().WordsNormalized,
		},
	}
	switch out.Kind() {
	case pagehighlight.KindNotFound:
		rep.Message = errNotFound.Error()
	case pagehighlight.KindInvalidInput:
		rep.Message = errInvalidInput.Error()
	}
	for _, m := range out.Matches() {
		rep.Items = append(rep.Items, reportItem{
			PageNumber: m.PageNumber(),
			PageWidth:  m.PageWidth(),
			PageHeight: m.PageHeight(),
			SearchText: m.SearchText(),
			Polygon:    m.Rect().Array(),
			WordIndex:  m.WordIndex(),
			WordCount:  m.WordCount(),
		})
	}
	return rep
}

func writeReport(w io.Writer, format string, rep report) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
