// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Outcome is the result of structural extraction. Reason is nil when the
// text layer was read; otherwise it explains why it could not be.
type Outcome struct {
	Text   string
	Pages  int
	Reason error
}

// OK reports whether structural extraction succeeded.
func (o Outcome) OK() bool { return o.Reason == nil }

// Blank reports whether the extracted text is empty or whitespace.
func (o Outcome) Blank() bool { return strings.TrimSpace(o.Text) == "" }

// pageSource is an opened PDF whose pages can be read by 1-based number.
type pageSource interface {
	NumPage() int
	PageText(n int) (string, error)
	Close() error
}

// Structural reads the embedded text layer of a PDF.
type Structural struct {
	open func(path string) (pageSource, error)
}

// NewStructural returns a structural extractor backed by ledongthuc/pdf.
func NewStructural() *Structural {
	return &Structural{open: openLedongthuc}
}

// Extract reads every page in order and concatenates the text. A page
// without a text layer contributes nothing. Parser panics on malformed
// input become the Outcome's Reason.
func (s *Structural) Extract(path string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Reason: fmt.Errorf("pdf parser panic: %v", r)}
		}
	}()

	src, err := s.open(path)
	if err != nil {
		return Outcome{Reason: fmt.Errorf("opening PDF: %w", err)}
	}
	defer src.Close()

	n := src.NumPage()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		text, err := src.PageText(i)
		if err != nil {
			return Outcome{Pages: n, Reason: fmt.Errorf("reading page %d: %w", i, err)}
		}
		b.WriteString(text)
	}
	return Outcome{Text: b.String(), Pages: n}
}

// ledongthucSource adapts ledongthuc/pdf to pageSource. Fonts are cached
// across pages since most documents reuse a handful.
type ledongthucSource struct {
	closer interface{ Close() error }
	reader *pdf.Reader
	fonts  map[string]*pdf.Font
}

func openLedongthuc(path string) (pageSource, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &ledongthucSource{closer: f, reader: r, fonts: make(map[string]*pdf.Font)}, nil
}

func (s *ledongthucSource) NumPage() int { return s.reader.NumPage() }

func (s *ledongthucSource) PageText(n int) (string, error) {
	p := s.reader.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	for _, name := range p.Fonts() {
		if _, ok := s.fonts[name]; !ok {
			f := p.Font(name)
			s.fonts[name] = &f
		}
	}
	return p.GetPlainText(s.fonts)
}

func (s *ledongthucSource) Close() error { return s.closer.Close() }
