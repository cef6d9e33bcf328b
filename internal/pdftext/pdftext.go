// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts plain text from PDF files. It reads the
// embedded text layer first and falls back to OCR of rendered pages when
// that fails.
package pdftext

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/docset/pkg/types"
)

// TextExtractor is the OCR stage as seen by Extractor.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// StructuralExtractor is the text-layer stage as seen by Extractor.
type StructuralExtractor interface {
	Extract(path string) Outcome
}

// Options tunes the fallback policy.
type Options struct {
	// OCROnEmpty also falls back when the text layer is blank.
	OCROnEmpty bool
	Logger     zerolog.Logger
}

// Extractor runs structural extraction and, when its Outcome is not OK,
// OCR. The fallback covers the whole document, never single pages.
type Extractor struct {
	structural StructuralExtractor
	ocr        TextExtractor
	onEmpty    bool
	log        zerolog.Logger
}

// New returns an Extractor. structural may be nil for the default
// ledongthuc/pdf reader.
func New(structural StructuralExtractor, ocr TextExtractor, opts Options) *Extractor {
	if structural == nil {
		structural = NewStructural()
	}
	return &Extractor{
		structural: structural,
		ocr:        ocr,
		onEmpty:    opts.OCROnEmpty,
		log:        opts.Logger,
	}
}

// Extract returns the text of the PDF at path.
func (e *Extractor) Extract(path string) (string, error) {
	out := e.structural.Extract(path)
	if out.OK() && !(e.onEmpty && out.Blank() && out.Pages > 0) {
		e.log.Debug().Str("file", path).Int("pages", out.Pages).Msg("text layer extracted")
		return out.Text, nil
	}

	reason := out.Reason
	if reason == nil {
		reason = fmt.Errorf("text layer is empty")
	}
	e.log.Warn().Str("file", path).Err(reason).Msg("structural extraction failed, trying OCR")

	if e.ocr == nil {
		return "", types.NewError(types.KindExtraction, "extract pdf", path,
			fmt.Errorf("%w (no OCR fallback configured)", reason))
	}
	text, err := e.ocr.Extract(path)
	if err != nil {
		return "", types.NewError(types.KindExtraction, "extract pdf", path,
			fmt.Errorf("structural: %v; ocr: %w", reason, err))
	}
	return text, nil
}
