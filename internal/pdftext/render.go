// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/docset/internal/ocr"
)

// Renderer rasterises PDF pages. Render calls fn once per page, in page
// order, with the 1-based page number.
type Renderer interface {
	Render(path string, dpi float64, fn func(page int, img image.Image) error) error
}

// FitzRenderer renders pages with MuPDF through go-fitz.
type FitzRenderer struct{}

// Render implements Renderer.
func (FitzRenderer) Render(path string, dpi float64, fn func(page int, img image.Image) error) error {
	doc, err := fitz.New(path)
	if err != nil {
		return fmt.Errorf("opening PDF for rendering: %w", err)
	}
	defer doc.Close()

	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			return fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		if err := fn(i+1, img); err != nil {
			return err
		}
	}
	return nil
}

// OCR extracts text by rendering every page and recognising it.
type OCR struct {
	renderer   Renderer
	recognizer ocr.Recognizer
	dpi        float64
}

// NewOCR combines a renderer and a recognizer. A dpi of zero uses 200.
func NewOCR(renderer Renderer, recognizer ocr.Recognizer, dpi float64) *OCR {
	if dpi <= 0 {
		dpi = 200
	}
	return &OCR{renderer: renderer, recognizer: recognizer, dpi: dpi}
}

// Extract returns the recognised text of all pages concatenated in page
// order. Any page failure fails the whole document.
func (o *OCR) Extract(path string) (string, error) {
	var b strings.Builder
	err := o.renderer.Render(path, o.dpi, func(page int, img image.Image) error {
		text, err := o.recognizer.Recognize(img)
		if err != nil {
			return fmt.Errorf("recognising page %d: %w", page, err)
		}
		b.WriteString(text)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
