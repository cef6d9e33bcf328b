// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package subtitle extracts the spoken text of SRT files. Timing and cue
// numbers are dropped; only cue text survives, in file order.
package subtitle

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/asticode/go-astisub"
	"github.com/rs/zerolog"

	"github.com/pdiddy/docset/pkg/types"
)

// Cue is one subtitle entry.
type Cue struct {
	Index int
	Text  string
}

// Extractor reads SRT files in any detectable encoding.
type Extractor struct {
	detector Detector
	log      zerolog.Logger
}

// New returns an Extractor. A nil detector uses chardet.
func New(detector Detector, log zerolog.Logger) *Extractor {
	if detector == nil {
		detector = NewChardetDetector()
	}
	return &Extractor{detector: detector, log: log}
}

// Extract returns the cue texts of the SRT file at path joined by "\n".
func (e *Extractor) Extract(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", types.NewError(types.KindIO, "read subtitle", path, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "", nil
	}

	charset, err := e.detector.Detect(raw)
	if err != nil {
		return "", types.NewError(types.KindExtraction, "detect encoding", path, err)
	}
	e.log.Debug().Str("file", path).Str("charset", charset).Msg("detected subtitle encoding")

	text, err := Decode(raw, charset)
	if err != nil {
		return "", types.NewError(types.KindExtraction, "decode subtitle", path, err)
	}

	cues, err := ParseCues(text)
	if err != nil {
		return "", types.NewError(types.KindExtraction, "parse subtitle", path, err)
	}
	return JoinCues(cues), nil
}

// errNoCues is returned for non-blank input without a single timing line.
var errNoCues = errors.New("no subtitle cues found")

// timingLine matches an SRT timing line such as
// "00:00:01,000 --> 00:00:03,500", optionally followed by position hints.
var timingLine = regexp.MustCompile(`^\d+:\d{2}:\d{2}[,.]\d{1,3}\s*-->\s*\d+:\d{2}:\d{2}[,.]\d{1,3}(\s.*)?$`)

// ParseCues parses decoded SRT text into cues in file order. Input that
// is not blank but holds no cue is an error, and so is any block that
// does not start with an index line followed by a timing line.
func ParseCues(text string) ([]Cue, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if err := checkBlocks(text); err != nil {
		return nil, err
	}

	subs, err := astisub.ReadFromSRT(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	if len(subs.Items) == 0 && strings.TrimSpace(text) != "" {
		return nil, errNoCues
	}

	cues := make([]Cue, 0, len(subs.Items))
	for _, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, line := range item.Lines {
			lines = append(lines, lineText(line))
		}
		text := strings.Trim(strings.Join(lines, "\n"), "\n")
		cues = append(cues, Cue{Index: item.Index, Text: text})
	}
	return cues, nil
}

// checkBlocks verifies the block structure astisub is lenient about:
// every run of lines between blank lines must open with a numeric index
// and a timing line. The error names the first offending block by line.
func checkBlocks(text string) error {
	if !strings.Contains(text, "-->") {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return errNoCues
	}

	var block []string
	start := 0
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		defer func() { block = block[:0] }()
		if _, err := strconv.Atoi(strings.TrimSpace(block[0])); err != nil {
			return fmt.Errorf("malformed cue at line %d: expected a cue index, got %q", start, block[0])
		}
		if len(block) < 2 || !timingLine.MatchString(strings.TrimSpace(block[1])) {
			got := ""
			if len(block) > 1 {
				got = block[1]
			}
			return fmt.Errorf("malformed cue at line %d: expected a timing line, got %q", start+1, got)
		}
		return nil
	}

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		if len(block) == 0 {
			start = i + 1
		}
		block = append(block, line)
	}
	return flush()
}

// JoinCues concatenates cue texts separated by newlines.
func JoinCues(cues []Cue) string {
	texts := make([]string, len(cues))
	for i, c := range cues {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n")
}

// lineText rebuilds a line from its styled segments. Segment text is
// kept as written, including leading and trailing spaces.
func lineText(l astisub.Line) string {
	var b strings.Builder
	for _, it := range l.Items {
		b.WriteString(it.Text)
	}
	return b.String()
}
