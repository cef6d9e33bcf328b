// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/docset/internal/acquire"
	"github.com/pdiddy/docset/internal/convert"
	"github.com/pdiddy/docset/internal/logging"
	"github.com/pdiddy/docset/internal/ocr"
	"github.com/pdiddy/docset/internal/output"
	"github.com/pdiddy/docset/internal/pdftext"
	"github.com/pdiddy/docset/internal/subtitle"
	"github.com/pdiddy/docset/pkg/types"
)

// runConvert is the root command action.
func runConvert(cmd *cobra.Command, _ []string) error {
	req, err := requestFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, cfgFile, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if cfgFile != "" {
		log.Debug().Str("file", cfgFile).Msg("using config file")
	}

	req.OutputDir = cfg.OutputDir
	if err := req.Validate(); err != nil {
		return err
	}
	log.Debug().Stringer("request", req).Str("mode", req.Mode().String()).Msg("starting conversion")

	progress := io.Discard
	if stderrIsTerminal() {
		progress = cmd.ErrOrStderr()
	}
	driver := newDriver(cfg, log, cmd.OutOrStdout(), progress)
	result, runErr := driver.Run(cmd.Context(), req)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := convert.WriteReport(result, reportPath); err != nil {
			log.Error().Err(err).Msg("writing report")
			if runErr == nil {
				runErr = err
			}
		}
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d files failed", result.Failed, result.Total())
	}
	return nil
}

// newDriver wires the extractors, downloader and output options from cfg.
// The OCR engine is only resolved when a PDF actually needs it.
func newDriver(cfg types.Config, log zerolog.Logger, status, progress io.Writer) *convert.Driver {
	recognizer := ocr.Lazy(func() (ocr.Recognizer, error) {
		return ocr.New(cfg.OCR)
	})
	pdfExtractor := pdftext.New(nil,
		pdftext.NewOCR(pdftext.FitzRenderer{}, recognizer, cfg.OCR.DPI),
		pdftext.Options{OCROnEmpty: cfg.OCR.OnEmpty, Logger: log},
	)

	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	return &convert.Driver{
		Extractors: map[types.FileType]convert.Extractor{
			types.FilePDF: pdfExtractor,
			types.FileSRT: subtitle.New(nil, log),
		},
		Download: func(rawURL, destDir string) (string, error) {
			return acquire.Download(client, rawURL, destDir, cfg.HTTP, progress)
		},
		Output:   output.Options{EscapeUnicode: cfg.JSON.EscapeUnicode},
		FailFast: cfg.FailFast,
		Log:      log,
		Status:   status,
	}
}

// stderrIsTerminal reports whether progress bars should be drawn.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
