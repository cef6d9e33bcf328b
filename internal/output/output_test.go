// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docset/pkg/types"
)

func TestMarshalContent(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want string
	}{
		{
			name: "ascii",
			text: "hello\nworld",
			opts: Options{EscapeUnicode: true},
			want: "{\n    \"content\": \"hello\\nworld\"\n}",
		},
		{
			name: "escaped cjk",
			text: "字幕",
			opts: Options{EscapeUnicode: true},
			want: "{\n    \"content\": \"\\u5b57\\u5e55\"\n}",
		},
		{
			name: "raw cjk",
			text: "字幕",
			opts: Options{},
			want: "{\n    \"content\": \"字幕\"\n}",
		},
		{
			name: "astral plane uses surrogate pair",
			text: "😀",
			opts: Options{EscapeUnicode: true},
			want: "{\n    \"content\": \"\\ud83d\\ude00\"\n}",
		},
		{
			name: "html left alone",
			text: "a < b & c",
			opts: Options{EscapeUnicode: true},
			want: "{\n    \"content\": \"a < b & c\"\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalContent(tt.text, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	texts := []string{
		"",
		"plain",
		"line one\nline two\ttabbed \"quoted\" \\ back",
		"繁體中文字幕 日本語 한국어 😀",
	}
	for i, text := range texts {
		for _, escape := range []bool{true, false} {
			path := filepath.Join(dir, "doc.json")
			require.NoError(t, WriteJSON(text, path, Options{EscapeUnicode: escape}), "case %d", i)
			got, err := ReadJSON(path)
			require.NoError(t, err)
			assert.Equal(t, text, got, "case %d escape=%v", i, escape)
		}
	}
}

func TestWriteTargets(t *testing.T) {
	dir := t.TempDir()
	targets := Targets{
		TextPath: filepath.Join(dir, "nested", "out.txt"),
		JSONPath: filepath.Join(dir, "out.json"),
	}

	require.NoError(t, Write("extracted text", targets, Options{EscapeUnicode: true}))

	data, err := os.ReadFile(targets.TextPath)
	require.NoError(t, err)
	assert.Equal(t, "extracted text", string(data))

	got, err := ReadJSON(targets.JSONPath)
	require.NoError(t, err)
	assert.Equal(t, "extracted text", got)
}

func TestWriteNoTargets(t *testing.T) {
	assert.True(t, Targets{}.Empty())
	assert.NoError(t, Write("ignored", Targets{}, Options{}))
}

func TestWriteFailureIsIOError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteText("text", filepath.Join(blocker, "out.txt"))
	require.Error(t, err)
	assert.Equal(t, types.KindIO, types.KindOf(err))
}
