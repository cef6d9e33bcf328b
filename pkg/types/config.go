package types

import "time"

// HTTPConfig holds settings for the single download request in URL mode.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with the download request
	// (e.g. "docset/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// OCREngine selects how page images are recognised.
type OCREngine string

const (
	// OCRTesseract runs a locally installed tesseract binary.
	OCRTesseract OCREngine = "tesseract"
	// OCRContainer runs tesseract inside a docker or podman image.
	OCRContainer OCREngine = "container"
)

// Valid reports whether e names a supported engine.
func (e OCREngine) Valid() bool {
	return e == OCRTesseract || e == OCRContainer
}

// OCRConfig holds settings for the PDF OCR fallback.
type OCRConfig struct {
	Engine OCREngine `json:"engine" yaml:"engine" mapstructure:"engine"`

	// Binary is the tesseract executable for the tesseract engine.
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// Image is the container image for the container engine.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Language is passed to tesseract as -l (e.g. "eng", "chi_tra+eng").
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// DPI is the resolution pages are rendered at before recognition.
	DPI float64 `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// OnEmpty also triggers OCR when structural extraction succeeds but
	// returns only whitespace.
	OnEmpty bool `json:"on_empty" yaml:"on_empty" mapstructure:"on_empty"`
}

// JSONConfig holds settings for JSON output.
type JSONConfig struct {
	// EscapeUnicode writes non-ASCII characters as \uXXXX sequences.
	EscapeUnicode bool `json:"escape_unicode" yaml:"escape_unicode" mapstructure:"escape_unicode"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from the config file and flags.
type Config struct {
	// OutputDir receives downloads and batch outputs (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// FailFast aborts a batch on the first failing file.
	FailFast bool `json:"fail_fast" yaml:"fail_fast" mapstructure:"fail_fast"`

	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`
	OCR  OCRConfig  `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
	JSON JSONConfig `json:"json" yaml:"json" mapstructure:"json"`
	Log  LogConfig  `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when neither a config file nor
// a flag overrides them.
func DefaultConfig() Config {
	return Config{
		OutputDir: "output",
		HTTP: HTTPConfig{
			Timeout:   5 * time.Minute,
			UserAgent: "docset/0.1",
		},
		OCR: OCRConfig{
			Engine:   OCRTesseract,
			Binary:   "tesseract",
			Image:    "jitesoft/tesseract-ocr:latest",
			Language: "eng",
			DPI:      200,
		},
		JSON: JSONConfig{EscapeUnicode: true},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
