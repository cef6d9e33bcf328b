// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTypeFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		pdf     bool
		srt     bool
		want    FileType
		wantErr bool
	}{
		{"pdf only", true, false, FilePDF, false},
		{"srt only", false, true, FileSRT, false},
		{"neither", false, false, "", true},
		{"both", true, true, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileTypeFromFlags(tt.pdf, tt.srt)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindConfiguration, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFileType(t *testing.T) {
	got, err := ParseFileType(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FilePDF, got)
	assert.Equal(t, ".pdf", got.Extension())

	_, err = ParseFileType("docx")
	assert.True(t, IsKind(err, KindConfiguration))
}

func TestConversionRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      ConversionRequest
		wantMode Mode
		wantErr  bool
	}{
		{
			name:     "single input",
			req:      ConversionRequest{Type: FilePDF, Input: "a.pdf", OutputDir: "output"},
			wantMode: ModeSingle,
		},
		{
			name:     "url",
			req:      ConversionRequest{Type: FilePDF, URL: "https://example.com/doc.pdf", OutputDir: "output"},
			wantMode: ModeURL,
		},
		{
			name:     "batch",
			req:      ConversionRequest{Type: FileSRT, BatchDir: "subs", OutputDir: "output"},
			wantMode: ModeBatch,
		},
		{
			name:     "no input",
			req:      ConversionRequest{Type: FilePDF, OutputDir: "output"},
			wantMode: ModeNone,
			wantErr:  true,
		},
		{
			name:     "two inputs",
			req:      ConversionRequest{Type: FilePDF, Input: "a.pdf", BatchDir: "docs", OutputDir: "output"},
			wantMode: ModeNone,
			wantErr:  true,
		},
		{
			name:     "missing type",
			req:      ConversionRequest{Input: "a.pdf", OutputDir: "output"},
			wantMode: ModeSingle,
			wantErr:  true,
		},
		{
			name:     "missing output dir",
			req:      ConversionRequest{Type: FilePDF, Input: "a.pdf"},
			wantMode: ModeSingle,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMode, tt.req.Mode())
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, IsKind(err, KindConfiguration), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateInputsIgnoresOutputDir(t *testing.T) {
	req := ConversionRequest{Type: FileSRT, Input: "talk.srt"}
	assert.NoError(t, req.ValidateInputs())
	assert.True(t, IsKind(req.Validate(), KindConfiguration))

	req = ConversionRequest{Type: FileSRT, OutputDir: "output"}
	assert.True(t, IsKind(req.ValidateInputs(), KindConfiguration))
}

func TestErrorKindThroughWrapping(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("fetching source: %w", NewError(KindNetwork, "download", "https://example.com/a.pdf", base))

	assert.Equal(t, KindNetwork, KindOf(err))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "download https://example.com/a.pdf: connection refused")
	assert.Nil(t, NewError(KindIO, "write", "x", nil))
	assert.Equal(t, ErrorKind(""), KindOf(base))
}
