// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docset CLI. It converts PDF and
// SRT files into plain text and JSON, one file, one URL or a whole
// directory tree at a time.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docset/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Process exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitConfiguration = 2
)

// newRootCmd builds the docset command tree.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docset",
		Short: "Convert PDF and SRT files into text and JSON datasets",
		Long: `docset extracts plain text from PDF documents and SRT subtitle files and
writes it as a .txt file, a {"content": ...} JSON file, or both.

PDF text is read from the embedded text layer; when that fails the pages are
rendered and recognised with tesseract. Subtitle files in any detectable
encoding are decoded to UTF-8 and reduced to their cue text.

Input comes from a local file (--input), a URL (--url) that is downloaded
into the output directory first, or a directory tree (--batch) whose
matching files are converted into <output-dir>/<name>.txt and .json.`,
		Example: `  docset --pdf -i paper.pdf -t paper.txt -j paper.json
  docset --srt --url https://example.com/talk.srt -t talk.txt
  docset --pdf -b ./scans --output-dir dataset --report report.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			return types.NewError(types.KindConfiguration, "parse arguments", "", cobra.NoArgs(cmd, args))
		},
		RunE: runConvert,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return types.NewError(types.KindConfiguration, "parse flags", "", err)
	})

	addFlags(cmd)
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case types.IsKind(err, types.KindConfiguration):
		return exitConfiguration
	default:
		return exitFailure
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(exitCode(err))
}
