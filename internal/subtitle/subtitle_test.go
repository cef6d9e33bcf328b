// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asticode/go-astisub"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/pdiddy/docset/pkg/types"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Hello there.

2
00:00:04,000 --> 00:00:06,000
This cue has
two lines.

3
00:00:07,250 --> 00:00:09,000
Goodbye.
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func encode(t *testing.T, enc encoding.Encoding, s string) []byte {
	t.Helper()
	out, err := enc.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func fixed(name string) Detector {
	return DetectorFunc(func([]byte) (string, error) { return name, nil })
}

func TestParseCues(t *testing.T) {
	cues, err := ParseCues(sampleSRT)
	require.NoError(t, err)
	require.Len(t, cues, 3)
	assert.Equal(t, "Hello there.", cues[0].Text)
	assert.Equal(t, "This cue has\ntwo lines.", cues[1].Text)
	assert.Equal(t, "Goodbye.", cues[2].Text)
	assert.Equal(t, 3, cues[2].Index)
}

func TestExtractDropsTimingAndIndex(t *testing.T) {
	path := writeFile(t, "sample.srt", []byte(sampleSRT))

	text, err := New(nil, zerolog.Nop()).Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "Hello there.\nThis cue has\ntwo lines.\nGoodbye.", text)
	assert.NotContains(t, text, "-->")
	assert.NotContains(t, text, "00:00")
}

func TestExtractCRLF(t *testing.T) {
	path := writeFile(t, "crlf.srt", []byte(strings.ReplaceAll(sampleSRT, "\n", "\r\n")))
	text, err := New(fixed("UTF-8"), zerolog.Nop()).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello there.\nThis cue has\ntwo lines.\nGoodbye.", text)
}

const chineseSRT = `1
00:00:01,000 --> 00:00:04,000
我们今天在这里说的是中国人的生活。

2
00:00:05,000 --> 00:00:08,000
这个问题是我们大家都很关心的，他们也有很多的想法。

3
00:00:09,000 --> 00:00:12,000
我们要在工作中学习，在学习中工作，这是一个很重要的时代。

4
00:00:13,000 --> 00:00:16,000
他说：中国的发展和人民的生活是我们最大的事情。
`

func TestExtractDetectsGBK(t *testing.T) {
	raw := encode(t, simplifiedchinese.GBK, chineseSRT)
	require.NotEqual(t, []byte(chineseSRT), raw)
	path := writeFile(t, "gbk.srt", raw)

	text, err := New(nil, zerolog.Nop()).Extract(path)
	require.NoError(t, err)

	assert.Equal(t,
		"我们今天在这里说的是中国人的生活。\n"+
			"这个问题是我们大家都很关心的，他们也有很多的想法。\n"+
			"我们要在工作中学习，在学习中工作，这是一个很重要的时代。\n"+
			"他说：中国的发展和人民的生活是我们最大的事情。",
		text)
}

func TestExtractBig5WithInjectedDetector(t *testing.T) {
	srt := "1\n00:00:01,000 --> 00:00:02,000\n繁體中文字幕\n"
	path := writeFile(t, "big5.srt", encode(t, traditionalchinese.Big5, srt))

	text, err := New(fixed("Big5"), zerolog.Nop()).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "繁體中文字幕", text)
}

func TestExtractUTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	path := writeFile(t, "utf16.srt", encode(t, enc, "1\n00:00:01,000 --> 00:00:02,000\nYes.\n"))

	text, err := New(nil, zerolog.Nop()).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Yes.", text)
}

func TestExtractEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.srt", []byte("\n\n"))
	text, err := New(nil, zerolog.Nop()).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		detector Detector
		wantMsg  string
	}{
		{
			name:     "detector gives up",
			content:  sampleSRT,
			detector: DetectorFunc(func([]byte) (string, error) { return "", ErrUnknownEncoding }),
			wantMsg:  "unknown encoding",
		},
		{
			name:     "unsupported charset",
			content:  sampleSRT,
			detector: fixed("IBM420_rtl"),
			wantMsg:  "unsupported charset",
		},
		{
			name:     "bad timestamp",
			content:  "1\n00:00:xx,000 --> 00:00:02,000\nBroken\n",
			detector: fixed("UTF-8"),
			wantMsg:  "parse subtitle",
		},
		{
			name:     "no cues",
			content:  "just some prose\nwith no timing\n",
			detector: fixed("UTF-8"),
			wantMsg:  "no subtitle cues",
		},
		{
			name:     "middle cue without timing",
			content:  "1\n00:00:01,000 --> 00:00:02,000\nfirst\n\n2\nnot a timing line\nsecond\n\n3\n00:00:05,000 --> 00:00:06,000\nthird\n",
			detector: fixed("UTF-8"),
			wantMsg:  "malformed cue at line 6",
		},
		{
			name:     "stray trailing text",
			content:  "1\n00:00:01,000 --> 00:00:02,000\nfirst\n\nstray trailing text\n",
			detector: fixed("UTF-8"),
			wantMsg:  "expected a cue index",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.srt", []byte(tt.content))
			_, err := New(tt.detector, zerolog.Nop()).Extract(path)
			require.Error(t, err)
			assert.Equal(t, types.KindExtraction, types.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseCuesRejectsMalformedBlocks(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{
			name:    "timing line replaced by text",
			text:    "1\n00:00:01,000 --> 00:00:02,000\nfirst\n\n2\nnot a timing line\nsecond\n\n3\n00:00:05,000 --> 00:00:06,000\nthird\n",
			wantMsg: `line 6: expected a timing line, got "not a timing line"`,
		},
		{
			name:    "blank line inside a cue",
			text:    "1\n00:00:01,000 --> 00:00:02,000\nline one\n\nline after blank\n\n2\n00:00:03,000 --> 00:00:04,000\nsecond\n",
			wantMsg: `line 5: expected a cue index, got "line after blank"`,
		},
		{
			name:    "trailing prose",
			text:    "1\n00:00:01,000 --> 00:00:02,000\nfirst\n\n2\n00:00:03,000 --> 00:00:04,000\nsecond\n\nstray trailing text\n",
			wantMsg: `line 9: expected a cue index, got "stray trailing text"`,
		},
		{
			name:    "junk before the first cue",
			text:    "garbage header\n\n1\n00:00:01,000 --> 00:00:02,000\nfirst\n",
			wantMsg: `line 1: expected a cue index, got "garbage header"`,
		},
		{
			name:    "index only",
			text:    "1\n00:00:01,000 --> 00:00:02,000\nfirst\n\n2\n",
			wantMsg: "line 6: expected a timing line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues, err := ParseCues(tt.text)
			require.Error(t, err)
			assert.Nil(t, cues)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseCuesAllowsTrailingBlankLines(t *testing.T) {
	cues, err := ParseCues(sampleSRT + "\n\n  \n")
	require.NoError(t, err)
	assert.Len(t, cues, 3)
}

func TestLineTextKeepsSpacing(t *testing.T) {
	line := astisub.Line{Items: []astisub.LineItem{{Text: "   indented   text  "}}}
	assert.Equal(t, "   indented   text  ", lineText(line))

	styled := astisub.Line{Items: []astisub.LineItem{{Text: "Hello "}, {Text: "world"}}}
	assert.Equal(t, "Hello world", lineText(styled))
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New(nil, zerolog.Nop()).Extract(filepath.Join(t.TempDir(), "nope.srt"))
	require.Error(t, err)
	assert.Equal(t, types.KindIO, types.KindOf(err))
}

func TestChardetDetectorBOM(t *testing.T) {
	d := NewChardetDetector()
	tests := []struct {
		data []byte
		want string
	}{
		{[]byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "UTF-8"},
		{[]byte{0xFE, 0xFF, 0x00, 'h'}, "UTF-16BE"},
		{[]byte{0xFF, 0xFE, 'h', 0x00}, "UTF-16LE"},
	}
	for _, tt := range tests {
		got, err := d.Detect(tt.data)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"UTF-8", "GB-18030", "Big5", "Shift_JIS", "EUC-KR", "ISO-8859-1", "windows-1251"} {
		_, err := LookupEncoding(name)
		assert.NoError(t, err, name)
	}
	_, err := LookupEncoding("x-no-such-charset")
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
}

func TestJoinCues(t *testing.T) {
	assert.Equal(t, "", JoinCues(nil))
	assert.Equal(t, "a\n\nc", JoinCues([]Cue{{Text: "a"}, {Text: ""}, {Text: "c"}}))
}
