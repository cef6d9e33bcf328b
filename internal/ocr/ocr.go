// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognises text in page images with tesseract, run either
// from a local binary or inside a container image.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdiddy/docset/internal/container"
	"github.com/pdiddy/docset/pkg/types"
)

// Recognizer turns one page image into text.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// runner abstracts process execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osRunner) Run(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Tesseract runs a local tesseract binary, piping a PNG on stdin.
type Tesseract struct {
	binary   string
	language string
	dpi      float64
	run      runner
}

// NewTesseract checks that binary is on PATH and returns a recognizer.
func NewTesseract(binary, language string, dpi float64) (*Tesseract, error) {
	return newTesseract(osRunner{}, binary, language, dpi)
}

func newTesseract(r runner, binary, language string, dpi float64) (*Tesseract, error) {
	if binary == "" {
		binary = "tesseract"
	}
	if _, err := r.LookPath(binary); err != nil {
		return nil, fmt.Errorf("tesseract binary %q not found: %w", binary, err)
	}
	return &Tesseract{binary: binary, language: language, dpi: dpi, run: r}, nil
}

// Recognize implements Recognizer.
func (t *Tesseract) Recognize(img image.Image) (string, error) {
	input, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	var out, stderr bytes.Buffer
	if err := t.run.Run(t.binary, tesseractArgs(t.language, t.dpi), input, &out, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", t.binary, err, msg)
		}
		return "", fmt.Errorf("running %s: %w", t.binary, err)
	}
	return out.String(), nil
}

// Container runs tesseract inside image through a container runtime.
type Container struct {
	runtime  container.Runtime
	image    string
	language string
	dpi      float64
}

// NewContainer verifies image exists in rt and returns a recognizer.
func NewContainer(rt container.Runtime, image, language string, dpi float64) (*Container, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("OCR image not available in %s: %w", rt.Name(), err)
	}
	return &Container{runtime: rt, image: image, language: language, dpi: dpi}, nil
}

// Recognize implements Recognizer.
func (c *Container) Recognize(img image.Image) (string, error) {
	input, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	args := append([]string{"tesseract"}, tesseractArgs(c.language, c.dpi)...)
	if err := c.runtime.Run(c.image, args, input, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// New builds the recognizer selected by cfg.
func New(cfg types.OCRConfig) (Recognizer, error) {
	switch cfg.Engine {
	case types.OCRTesseract, "":
		return NewTesseract(cfg.Binary, cfg.Language, cfg.DPI)
	case types.OCRContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewContainer(rt, cfg.Image, cfg.Language, cfg.DPI)
	default:
		return nil, types.Errorf(types.KindConfiguration, "select OCR engine", "", "unknown OCR engine %q", cfg.Engine)
	}
}

// tesseractArgs reads the image from stdin and writes text to stdout.
func tesseractArgs(language string, dpi float64) []string {
	args := []string{"stdin", "stdout"}
	if language != "" {
		args = append(args, "-l", language)
	}
	if dpi > 0 {
		args = append(args, "--dpi", strconv.Itoa(int(dpi)))
	}
	return args
}

func encodePNG(img image.Image) (io.Reader, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}
	return &buf, nil
}

// Lazy defers building a recognizer until the first page needs it, so a
// missing OCR engine only matters for documents that fall back to OCR.
func Lazy(build func() (Recognizer, error)) Recognizer {
	return &lazy{build: build}
}

type lazy struct {
	build func() (Recognizer, error)
	r     Recognizer
	err   error
	done  bool
}

func (l *lazy) Recognize(img image.Image) (string, error) {
	if !l.done {
		l.r, l.err = l.build()
		l.done = true
	}
	if l.err != nil {
		return "", l.err
	}
	return l.r.Recognize(img)
}
