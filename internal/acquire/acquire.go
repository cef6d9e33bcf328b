// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads a source document into a local directory
// before conversion.
package acquire

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/pdiddy/docset/pkg/types"
)

// chunkSize is the read size used while streaming a download to disk.
const chunkSize = 32 * 1024

// Filename derives the local file name from the URL path component.
func Filename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", types.NewError(types.KindConfiguration, "parse url", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", types.Errorf(types.KindConfiguration, "parse url", rawURL, "unsupported scheme %q", u.Scheme)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", types.Errorf(types.KindConfiguration, "parse url", rawURL, "cannot derive a file name from the URL path")
	}
	return name, nil
}

// Download fetches rawURL into destDir with a single GET request and
// returns the local path. Progress is drawn on progress as bytes arrive;
// a nil writer suppresses it. The body is streamed to a temporary
// file that is renamed into place only when the transfer completes.
func Download(client *http.Client, rawURL, destDir string, cfg types.HTTPConfig, progress io.Writer) (string, error) {
	name, err := Filename(rawURL)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", types.NewError(types.KindIO, "create directory", destDir, err)
	}
	destPath := filepath.Join(destDir, name)
	if progress == nil {
		progress = io.Discard
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", types.NewError(types.KindConfiguration, "create request", rawURL, err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", types.NewError(types.KindNetwork, "download", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", types.Errorf(types.KindNetwork, "download", rawURL, "HTTP %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(destDir, ".download-*.tmp")
	if err != nil {
		return "", types.NewError(types.KindIO, "create temp file", destDir, err)
	}
	tmpPath := tmpFile.Name()

	bar := newProgressBar(resp.ContentLength, name, progress)
	copyErr := copyChunks(io.MultiWriter(tmpFile, bar), resp.Body)
	closeErr := tmpFile.Close()
	_ = bar.Finish()

	if copyErr != nil {
		os.Remove(tmpPath)
		return "", types.NewError(types.KindNetwork, "download", rawURL, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", types.NewError(types.KindIO, "close temp file", tmpPath, closeErr)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", types.NewError(types.KindIO, "rename download", destPath, err)
	}
	return destPath, nil
}

// copyChunks copies src to dst in chunkSize reads.
func copyChunks(dst io.Writer, src io.Reader) error {
	buf := make([]byte, chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return fmt.Errorf("writing chunk: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
