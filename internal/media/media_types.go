// Package media classifies attachment URLs and MIME types into broad
// media classes.
package media

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed media_types.toml
var mediaTypesTOML []byte

type Type int

const (
	TypeVideo Type = iota
	TypeImage
	TypeAudio
	TypePDF
	TypeUnknown
)

func (t Type) String() string {
	switch t {
	case TypeVideo:
		return "video"
	case TypeImage:
		return "image"
	case TypeAudio:
		return "audio"
	case TypePDF:
		return "pdf"
	default:
		return "unknown"
	}
}

type TypeConfig struct {
	Extensions   []string `toml:"extensions"`
	URLPatterns  []string `toml:"url_patterns"`
	MIMEPrefixes []string `toml:"mime_prefixes"`
	MIMETypes    []string `toml:"mime_types"`
}

type TypesConfig struct {
	Video TypeConfig `toml:"video"`
	Audio TypeConfig `toml:"audio"`
	Image TypeConfig `toml:"image"`
	PDF   TypeConfig `toml:"pdf"`
}

type TypeDetector struct {
	config *TypesConfig
}

// NewTypeDetector loads the built-in media table.
func NewTypeDetector() (*TypeDetector, error) {
	return NewTypeDetectorFromTOML(mediaTypesTOML)
}

// NewTypeDetectorFromTOML builds a detector from a table with the same
// layout as the built-in one.
func NewTypeDetectorFromTOML(data []byte) (*TypeDetector, error) {
	var config TypesConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("decoding media types: %w", err)
	}

	return &TypeDetector{config: &config}, nil
}

// classes keeps the lookup order stable: video, audio, image, pdf.
func (d *TypeDetector) classes() []struct {
	typ Type
	cfg *TypeConfig
} {
	return []struct {
		typ Type
		cfg *TypeConfig
	}{
		{TypeVideo, &d.config.Video},
		{TypeAudio, &d.config.Audio},
		{TypeImage, &d.config.Image},
		{TypePDF, &d.config.PDF},
	}
}

// DetectType guesses the media class of url from its file extension and,
// for http(s) URLs, from well-known hosting patterns.
func (d *TypeDetector) DetectType(url string) Type {
	lower := strings.ToLower(url)
	isURL := strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")

	// Strip query and fragment before looking at the extension
	path := lower
	if idx := strings.IndexAny(path, "?#"); idx != -1 {
		path = path[:idx]
	}
	var ext string
	if idx := strings.LastIndex(path, "."); idx != -1 && !strings.Contains(path[idx:], "/") {
		ext = path[idx+1:]
	}

	if ext != "" {
		for _, c := range d.classes() {
			if slices.Contains(c.cfg.Extensions, ext) {
				return c.typ
			}
		}
	}

	if isURL {
		for _, c := range d.classes() {
			if matchesPattern(lower, c.cfg.URLPatterns) {
				return c.typ
			}
		}
	}

	return TypeUnknown
}

// TypeForMIME maps a MIME type, parameters allowed, to its media class.
func (d *TypeDetector) TypeForMIME(mime string) Type {
	m := strings.ToLower(strings.TrimSpace(mime))
	if idx := strings.Index(m, ";"); idx != -1 {
		m = strings.TrimSpace(m[:idx])
	}
	if m == "" {
		return TypeUnknown
	}

	for _, c := range d.classes() {
		if slices.Contains(c.cfg.MIMETypes, m) {
			return c.typ
		}
	}
	for _, c := range d.classes() {
		for _, prefix := range c.cfg.MIMEPrefixes {
			if strings.HasPrefix(m, prefix) {
				return c.typ
			}
		}
	}
	return TypeUnknown
}

func matchesPattern(url string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(url, pattern) {
			return true
		}
	}
	return false
}
