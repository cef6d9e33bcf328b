// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives a conversion: optional download, text
// extraction by declared file type, and output. It implements single-file,
// URL and recursive batch modes.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/docset/internal/output"
	"github.com/pdiddy/docset/pkg/types"
)

// Extractor turns a source file into plain text. The PDF and subtitle
// extractors implement it.
type Extractor interface {
	Extract(path string) (string, error)
}

// Downloader fetches a URL into destDir and returns the local path.
type Downloader func(rawURL, destDir string) (string, error)

// Driver holds everything a conversion needs. Status receives one line
// per file in the "converted: name" style; Log receives diagnostics.
type Driver struct {
	Extractors map[types.FileType]Extractor
	Download   Downloader
	Output     output.Options
	FailFast   bool
	Log        zerolog.Logger
	Status     io.Writer
}

func (d *Driver) status() io.Writer {
	if d.Status == nil {
		return io.Discard
	}
	return d.Status
}

// Run validates req, creates the output directory and dispatches on the
// request mode. Validation happens before any I/O. In batch mode per-file
// failures are reported in the result rather than returned, unless
// FailFast is set.
func (d *Driver) Run(ctx context.Context, req types.ConversionRequest) (BatchResult, error) {
	result := BatchResult{Type: req.Type}
	if err := req.Validate(); err != nil {
		return result, err
	}
	if _, err := d.extractor(req.Type); err != nil {
		return result, err
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return result, types.NewError(types.KindIO, "create output directory", req.OutputDir, err)
	}

	switch req.Mode() {
	case types.ModeBatch:
		if req.TextPath != "" || req.JSONPath != "" {
			d.Log.Warn().Msg("--txt and --json are ignored in batch mode")
		}
		return d.ConvertDirectory(ctx, req.Type, req.BatchDir, req.OutputDir)

	case types.ModeURL:
		if d.Download == nil {
			return result, types.Errorf(types.KindConfiguration, "download", req.URL, "no downloader configured")
		}
		fmt.Fprintf(d.status(), "downloading: %s\n", req.URL)
		path, err := d.Download(req.URL, req.OutputDir)
		if err != nil {
			return result, err
		}
		d.Log.Debug().Str("url", req.URL).Str("path", path).Msg("download complete")
		return d.single(ctx, req.Type, path, requestTargets(req))

	default:
		return d.single(ctx, req.Type, req.Input, requestTargets(req))
	}
}

func (d *Driver) single(ctx context.Context, fileType types.FileType, path string, targets output.Targets) (BatchResult, error) {
	result := BatchResult{Type: fileType}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if targets.Empty() {
		d.Log.Warn().Str("file", path).Msg("no --txt or --json target given, text will not be saved")
	}
	err := d.ConvertFile(fileType, path, targets)
	result.record(path, targets, err)
	return result, err
}

// ConvertFile extracts the text of path with the extractor for fileType
// and writes it to targets.
func (d *Driver) ConvertFile(fileType types.FileType, path string, targets output.Targets) error {
	name := filepath.Base(path)
	ex, err := d.extractor(fileType)
	if err != nil {
		return err
	}

	text, err := ex.Extract(path)
	if err != nil {
		fmt.Fprintf(d.status(), "failed:  %s (%v)\n", name, err)
		return err
	}
	if err := output.Write(text, targets, d.Output); err != nil {
		fmt.Fprintf(d.status(), "failed:  %s (%v)\n", name, err)
		return err
	}

	fmt.Fprintf(d.status(), "converted: %s\n", name)
	d.Log.Debug().Str("file", path).Int("chars", len([]rune(text))).
		Str("txt", targets.TextPath).Str("json", targets.JSONPath).Msg("converted")
	return nil
}

func (d *Driver) extractor(fileType types.FileType) (Extractor, error) {
	ex, ok := d.Extractors[fileType]
	if !ok || ex == nil {
		return nil, types.Errorf(types.KindConfiguration, "select extractor", "", "no extractor for file type %q", fileType)
	}
	return ex, nil
}

func requestTargets(req types.ConversionRequest) output.Targets {
	return output.Targets{TextPath: req.TextPath, JSONPath: req.JSONPath}
}
