// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/docset/pkg/types"
)

// configName is the base name of the config file looked up in the working
// directory.
const configName = "docset.yaml"

// addFlags registers the conversion flags on cmd.
func addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "local source file")
	f.String("url", "", "http(s) URL of a source file to download and convert")
	f.StringP("batch", "b", "", "directory to convert recursively")
	f.Bool("pdf", false, "treat sources as PDF documents")
	f.Bool("srt", false, "treat sources as SRT subtitle files")
	f.StringP("txt", "t", "", "plain text output path (single file and URL modes)")
	f.StringP("json", "j", "", "JSON output path (single file and URL modes)")
	f.String("output-dir", "", `directory for downloads and batch outputs (default "output")`)
	f.String("report", "", "write a YAML report of every processed file to this path")

	f.String("config", "", "config file (default: ./docset.yaml or ~/.config/docset/config.yaml)")
	f.Bool("fail-fast", false, "stop a batch at the first failing file")
	f.String("log-level", "", "log level: debug, info, warn, error")
	f.String("ocr-engine", "", "OCR engine: tesseract or container")
	f.String("ocr-lang", "", `tesseract language, e.g. "eng" or "chi_tra+eng"`)
	f.Bool("ocr-on-empty", false, "also run OCR when the PDF text layer is blank")
}

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	"output-dir":   "output_dir",
	"fail-fast":    "fail_fast",
	"log-level":    "log.level",
	"ocr-engine":   "ocr.engine",
	"ocr-lang":     "ocr.language",
	"ocr-on-empty": "ocr.on_empty",
}

// setDefaults seeds v with types.DefaultConfig so file values and flags
// only need to name what they change.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("fail_fast", d.FailFast)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("ocr.engine", string(d.OCR.Engine))
	v.SetDefault("ocr.binary", d.OCR.Binary)
	v.SetDefault("ocr.image", d.OCR.Image)
	v.SetDefault("ocr.language", d.OCR.Language)
	v.SetDefault("ocr.dpi", d.OCR.DPI)
	v.SetDefault("ocr.on_empty", d.OCR.OnEmpty)
	v.SetDefault("json.escape_unicode", d.JSON.EscapeUnicode)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// findConfigFile returns the config file to read: explicit when given,
// otherwise ./docset.yaml, then ~/.config/docset/config.yaml. It returns
// "" when no file applies.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{configName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "docset", "config.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then flags that were set on the command line. The
// environment is not consulted.
func loadConfig(flags *pflag.FlagSet) (types.Config, string, error) {
	var cfg types.Config
	v := viper.New()
	setDefaults(v)

	explicit, _ := flags.GetString("config")
	file := findConfigFile(explicit)
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit == "" && errors.As(err, &notFound) {
				file = ""
			} else {
				return cfg, file, types.NewError(types.KindConfiguration, "read config", file, err)
			}
		}
	}

	for name, key := range flagKeys {
		if fl := flags.Lookup(name); fl != nil && fl.Changed {
			if err := v.BindPFlag(key, fl); err != nil {
				return cfg, file, types.NewError(types.KindConfiguration, "bind flag", name, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, file, types.NewError(types.KindConfiguration, "decode config", file, err)
	}
	if !cfg.OCR.Engine.Valid() {
		return cfg, file, types.Errorf(types.KindConfiguration, "validate config", file,
			"ocr.engine must be tesseract or container, got %q", cfg.OCR.Engine)
	}
	if cfg.OCR.DPI <= 0 {
		return cfg, file, types.Errorf(types.KindConfiguration, "validate config", file,
			"ocr.dpi must be positive, got %v", cfg.OCR.DPI)
	}
	return cfg, file, nil
}

// requestFromFlags builds the conversion request from the selector and
// input flags and checks them. It reads no files, so it runs before the
// config is loaded; OutputDir is filled in from the config afterwards.
func requestFromFlags(flags *pflag.FlagSet) (types.ConversionRequest, error) {
	pdf, _ := flags.GetBool("pdf")
	srt, _ := flags.GetBool("srt")
	fileType, err := types.FileTypeFromFlags(pdf, srt)
	if err != nil {
		return types.ConversionRequest{}, err
	}

	var req types.ConversionRequest
	req.Type = fileType
	req.Input, _ = flags.GetString("input")
	req.URL, _ = flags.GetString("url")
	req.BatchDir, _ = flags.GetString("batch")
	req.TextPath, _ = flags.GetString("txt")
	req.JSONPath, _ = flags.GetString("json")
	return req, req.ValidateInputs()
}
