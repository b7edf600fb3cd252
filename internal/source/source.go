// Package source resolves opaque media locators into typed media source
// descriptors. Content type is inferred from an optional MIME hint first,
// then from the locator's file extension; each recognized type maps to its
// own constructor so engines can pick the matching source pipeline.
package source

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/samber/lo"
)

// ContentType classifies a media locator.
type ContentType int

const (
	Unknown ContentType = iota
	DASH
	SmoothStreaming
	HLS
	Progressive
)

// String returns the content type name.
func (c ContentType) String() string {
	switch c {
	case DASH:
		return "dash"
	case SmoothStreaming:
		return "smooth_streaming"
	case HLS:
		return "hls"
	case Progressive:
		return "progressive"
	default:
		return "unknown"
	}
}

// ErrUnsupportedSourceType is returned when content-type inference yields
// none of the recognized types.
var ErrUnsupportedSourceType = errors.New("unsupported source type")

// Media is an immutable media source descriptor handed to an engine's
// prepare step.
type Media struct {
	URI  string
	MIME string
	Type ContentType
}

// progressiveExts are container extensions served over plain HTTP or from
// local files, with no manifest.
var progressiveExts = []string{
	".mp4", ".m4a", ".m4v", ".mp3", ".flac", ".ogg", ".webm", ".mkv", ".ts", ".wav",
}

var mimeTypes = map[string]ContentType{
	"application/dash+xml":          DASH,
	"application/vnd.ms-sstr+xml":   SmoothStreaming,
	"application/x-mpegurl":         HLS,
	"application/vnd.apple.mpegurl": HLS,
}

// Infer returns the content type for the given locator, preferring the MIME
// hint over the extension.
func Infer(uri, mimeHint string) ContentType {
	if hint := strings.ToLower(strings.TrimSpace(mimeHint)); hint != "" {
		if t, ok := mimeTypes[hint]; ok {
			return t
		}
	}

	switch ext := extension(uri); {
	case ext == ".mpd":
		return DASH
	case ext == ".ism" || ext == ".isml":
		return SmoothStreaming
	case ext == ".m3u8":
		return HLS
	case lo.Contains(progressiveExts, ext):
		return Progressive
	default:
		return Unknown
	}
}

// Resolve builds a Media descriptor for the locator, dispatching to the
// constructor matching the inferred content type.
func Resolve(uri, mimeHint string) (Media, error) {
	switch Infer(uri, mimeHint) {
	case DASH:
		return NewDASH(uri, mimeHint), nil
	case SmoothStreaming:
		return NewSmoothStreaming(uri, mimeHint), nil
	case HLS:
		return NewHLS(uri, mimeHint), nil
	case Progressive:
		return NewProgressive(uri, mimeHint), nil
	default:
		return Media{}, fmt.Errorf("resolve %q: %w", uri, ErrUnsupportedSourceType)
	}
}

// NewDASH builds a DASH manifest source descriptor.
func NewDASH(uri, mime string) Media {
	return Media{URI: uri, MIME: mime, Type: DASH}
}

// NewSmoothStreaming builds a SmoothStreaming manifest source descriptor.
func NewSmoothStreaming(uri, mime string) Media {
	return Media{URI: uri, MIME: mime, Type: SmoothStreaming}
}

// NewHLS builds an HLS playlist source descriptor.
func NewHLS(uri, mime string) Media {
	return Media{URI: uri, MIME: mime, Type: HLS}
}

// NewProgressive builds a progressive (manifest-less) source descriptor.
func NewProgressive(uri, mime string) Media {
	return Media{URI: uri, MIME: mime, Type: Progressive}
}

// extension extracts the lowercase file extension, ignoring query strings
// and fragments.
func extension(uri string) string {
	trimmed := uri
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.ToLower(path.Ext(trimmed))
}
