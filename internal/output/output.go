// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists extracted text as a plain-text file and/or a
// JSON document of the form {"content": "..."}.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/pdiddy/docset/pkg/types"
)

const jsonIndent = "    "

// Targets names the files to write. Either field may be empty; when both
// are empty Write does nothing.
type Targets struct {
	TextPath string `yaml:"text_path,omitempty"`
	JSONPath string `yaml:"json_path,omitempty"`
}

// Empty reports whether no target is set.
func (t Targets) Empty() bool {
	return t.TextPath == "" && t.JSONPath == ""
}

// Options controls JSON encoding.
type Options struct {
	// EscapeUnicode writes every non-ASCII character as a \uXXXX escape.
	EscapeUnicode bool
}

// Document is the JSON output schema.
type Document struct {
	Content string `json:"content"`
}

// Write persists text to each requested target. Errors are classified
// as types.KindIO.
func Write(text string, t Targets, opts Options) error {
	if t.TextPath != "" {
		if err := WriteText(text, t.TextPath); err != nil {
			return err
		}
	}
	if t.JSONPath != "" {
		if err := WriteJSON(text, t.JSONPath, opts); err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes text to path verbatim.
func WriteText(text, path string) error {
	return writeFile(path, []byte(text))
}

// WriteJSON writes {"content": text} to path.
func WriteJSON(text, path string, opts Options) error {
	data, err := MarshalContent(text, opts)
	if err != nil {
		return types.NewError(types.KindIO, "encode json", path, err)
	}
	return writeFile(path, data)
}

// MarshalContent encodes text as an indented {"content": ...} document.
// HTML characters are left as is.
func MarshalContent(text string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(Document{Content: text}); err != nil {
		return nil, err
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if opts.EscapeUnicode {
		data = []byte(escapeNonASCII(string(data)))
	}
	return data, nil
}

// ReadJSON reads the content field of a document written by WriteJSON.
func ReadJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", types.NewError(types.KindIO, "read json", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", types.NewError(types.KindIO, "decode json", path, err)
	}
	return doc.Content, nil
}

// escapeNonASCII rewrites runes above 0x7F as JSON escapes. The input is
// already valid JSON, so any non-ASCII rune sits inside a string literal.
func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return types.NewError(types.KindIO, "create directory", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return types.NewError(types.KindIO, "write", path, err)
	}
	return nil
}
