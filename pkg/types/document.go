// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// FileType is the declared type of a source document.
type FileType string

const (
	FilePDF FileType = "pdf"
	FileSRT FileType = "srt"
)

// Extension returns the lower-case file extension, including the dot.
func (t FileType) Extension() string {
	return "." + string(t)
}

// Valid reports whether t is one of the supported types.
func (t FileType) Valid() bool {
	return t == FilePDF || t == FileSRT
}

// ParseFileType accepts "pdf" or "srt" in any case.
func ParseFileType(s string) (FileType, error) {
	t := FileType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", Errorf(KindConfiguration, "parse file type", "", "unsupported file type %q (want pdf or srt)", s)
	}
	return t, nil
}

// FileTypeFromFlags maps the --pdf/--srt selector flags to a FileType.
// Exactly one of them must be set.
func FileTypeFromFlags(pdf, srt bool) (FileType, error) {
	switch {
	case pdf && srt:
		return "", Errorf(KindConfiguration, "select file type", "", "--pdf and --srt are mutually exclusive")
	case pdf:
		return FilePDF, nil
	case srt:
		return FileSRT, nil
	default:
		return "", Errorf(KindConfiguration, "select file type", "", "one of --pdf or --srt is required")
	}
}

// Document is a source file on disk. SourceURL is set when the file was
// downloaded before processing.
type Document struct {
	Path      string   `json:"path" yaml:"path"`
	Type      FileType `json:"type" yaml:"type"`
	SourceURL string   `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// Mode is the input mode of a conversion request.
type Mode int

const (
	ModeNone Mode = iota
	ModeSingle
	ModeURL
	ModeBatch
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeURL:
		return "url"
	case ModeBatch:
		return "batch"
	default:
		return "none"
	}
}

// ConversionRequest describes one invocation of the converter: what to
// read, where from, and where results go.
type ConversionRequest struct {
	Type FileType

	// Exactly one of Input, URL and BatchDir is set.
	Input    string
	URL      string
	BatchDir string

	// TextPath and JSONPath are single-file targets; either may be empty.
	TextPath string
	JSONPath string

	// OutputDir receives downloads and batch outputs.
	OutputDir string
}

// Mode reports which input the request carries. It returns ModeNone when
// zero or more than one input is set.
func (r ConversionRequest) Mode() Mode {
	count := 0
	mode := ModeNone
	if r.Input != "" {
		count++
		mode = ModeSingle
	}
	if r.URL != "" {
		count++
		mode = ModeURL
	}
	if r.BatchDir != "" {
		count++
		mode = ModeBatch
	}
	if count != 1 {
		return ModeNone
	}
	return mode
}

// ValidateInputs checks the file type and that exactly one input is set.
// It ignores OutputDir so callers can check it before loading settings.
func (r ConversionRequest) ValidateInputs() error {
	if !r.Type.Valid() {
		return Errorf(KindConfiguration, "validate request", "", "file type must be pdf or srt, got %q", r.Type)
	}
	if r.Mode() == ModeNone {
		return Errorf(KindConfiguration, "validate request", "", "exactly one of --input, --url or --batch is required")
	}
	return nil
}

// Validate checks the request invariants. It performs no I/O.
func (r ConversionRequest) Validate() error {
	if err := r.ValidateInputs(); err != nil {
		return err
	}
	if r.OutputDir == "" {
		return Errorf(KindConfiguration, "validate request", "", "output directory must not be empty")
	}
	return nil
}

// String returns a short description for log lines.
func (r ConversionRequest) String() string {
	switch r.Mode() {
	case ModeSingle:
		return fmt.Sprintf("%s input %s", r.Type, r.Input)
	case ModeURL:
		return fmt.Sprintf("%s url %s", r.Type, r.URL)
	case ModeBatch:
		return fmt.Sprintf("%s batch %s", r.Type, r.BatchDir)
	default:
		return fmt.Sprintf("%s (no input)", r.Type)
	}
}
