//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every file of fileType (pdf or srt)
// under dir into output/, writing output/report.yaml.
func Convert(fileType, dir string) error {
	if fileType != "pdf" && fileType != "srt" {
		return fmt.Errorf("file type must be pdf or srt, got %q", fileType)
	}
	mg.Deps(Build, Init)
	return sh.RunV(binPath(),
		"--"+fileType,
		"--batch", dir,
		"--output-dir", "output",
		"--report", filepath.Join("output", "report.yaml"),
	)
}
