// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package subtitle

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned when no usable encoding is detected.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Detector guesses the character encoding of raw bytes and returns its
// name (e.g. "UTF-8", "GB-18030", "Shift_JIS").
type Detector interface {
	Detect(data []byte) (string, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(data []byte) (string, error)

// Detect implements Detector.
func (f DetectorFunc) Detect(data []byte) (string, error) { return f(data) }

// ChardetDetector detects encodings statistically with saintfish/chardet,
// after checking for a byte order mark.
type ChardetDetector struct {
	detector *chardet.Detector
}

// NewChardetDetector returns the default Detector.
func NewChardetDetector() *ChardetDetector {
	return &ChardetDetector{detector: chardet.NewTextDetector()}
}

var boms = []struct {
	prefix []byte
	name   string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, "UTF-8"},
	{[]byte{0xFE, 0xFF}, "UTF-16BE"},
	{[]byte{0xFF, 0xFE}, "UTF-16LE"},
}

// Detect implements Detector.
func (d *ChardetDetector) Detect(data []byte) (string, error) {
	for _, b := range boms {
		if bytes.HasPrefix(data, b.prefix) {
			return b.name, nil
		}
	}
	res, err := d.detector.DetectBest(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownEncoding, err)
	}
	if res == nil || res.Charset == "" {
		return "", ErrUnknownEncoding
	}
	return res.Charset, nil
}

// chardet names that are not WHATWG or IANA labels.
var charsetAliases = map[string]string{
	"gb-18030": "gb18030",
}

// LookupEncoding resolves a detector charset name to an encoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := charsetAliases[key]; ok {
		key = alias
	}
	if enc, err := htmlindex.Get(key); err == nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: unsupported charset %q", ErrUnknownEncoding, name)
}

// Decode converts data from the named encoding to UTF-8 and drops a
// leading byte order mark.
func Decode(data []byte, name string) (string, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return strings.TrimPrefix(string(out), "\ufeff"), nil
}
