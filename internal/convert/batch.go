// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docset/internal/output"
	"github.com/pdiddy/docset/pkg/types"
)

// File statuses recorded in a BatchResult.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// FileResult is the outcome for one input file.
type FileResult struct {
	Input   string         `yaml:"input"`
	Outputs output.Targets `yaml:"outputs"`
	Status  string         `yaml:"status"`
	Kind    string         `yaml:"kind,omitempty"`
	Error   string         `yaml:"error,omitempty"`
}

// BatchResult holds the outcome of a run.
type BatchResult struct {
	Type      types.FileType `yaml:"type"`
	Converted int            `yaml:"converted"`
	Failed    int            `yaml:"failed"`
	Files     []FileResult   `yaml:"files"`
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) record(path string, targets output.Targets, err error) {
	fr := FileResult{Input: path, Outputs: targets, Status: StatusConverted}
	if err != nil {
		fr.Status = StatusFailed
		fr.Kind = string(types.KindOf(err))
		fr.Error = err.Error()
		r.Failed++
	} else {
		r.Converted++
	}
	r.Files = append(r.Files, fr)
}

// BatchTargets maps an input file to its outputs in outputDir: the file
// name stem with .txt and .json extensions. Inputs with the same stem in
// different subdirectories map to the same outputs.
func BatchTargets(outputDir, inputPath string) output.Targets {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return output.Targets{
		TextPath: filepath.Join(outputDir, stem+".txt"),
		JSONPath: filepath.Join(outputDir, stem+".json"),
	}
}

// MatchesType reports whether name has the extension of fileType, in any
// case.
func MatchesType(name string, fileType types.FileType) bool {
	return strings.EqualFold(filepath.Ext(name), fileType.Extension())
}

// ConvertDirectory walks dir recursively in lexical order and converts
// every file whose extension matches fileType. Other files are skipped.
// Files are processed one at a time; a failing file is recorded and the
// walk continues unless FailFast is set.
func (d *Driver) ConvertDirectory(ctx context.Context, fileType types.FileType, dir, outputDir string) (BatchResult, error) {
	result := BatchResult{Type: fileType}

	info, err := os.Stat(dir)
	if err != nil {
		return result, types.NewError(types.KindIO, "open batch directory", dir, err)
	}
	if !info.IsDir() {
		return result, types.Errorf(types.KindConfiguration, "open batch directory", dir, "not a directory")
	}

	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return types.NewError(types.KindIO, "walk", path, err)
		}
		if entry.IsDir() || !MatchesType(entry.Name(), fileType) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		targets := BatchTargets(outputDir, path)
		convErr := d.ConvertFile(fileType, path, targets)
		result.record(path, targets, convErr)
		if convErr != nil && d.FailFast {
			return convErr
		}
		return nil
	})

	fmt.Fprintf(d.status(), "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result, walkErr
}

// WriteReport writes result to path as YAML.
func WriteReport(result BatchResult, path string) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return types.NewError(types.KindIO, "write report", path, err)
	}
	return nil
}

// ReadReport reads a report written by WriteReport.
func ReadReport(path string) (BatchResult, error) {
	var result BatchResult
	data, err := os.ReadFile(path)
	if err != nil {
		return result, types.NewError(types.KindIO, "read report", path, err)
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return result, nil
}
