package source

import (
	"errors"
	"testing"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		mime string
		want ContentType
	}{
		{"dash manifest", "https://cdn.example.com/video.mpd", "", DASH},
		{"smooth streaming ism", "https://cdn.example.com/video.ism", "", SmoothStreaming},
		{"smooth streaming isml", "https://cdn.example.com/video.isml", "", SmoothStreaming},
		{"hls playlist", "https://cdn.example.com/master.m3u8", "", HLS},
		{"progressive mp4", "https://cdn.example.com/clip.mp4", "", Progressive},
		{"progressive mp3", "/music/song.mp3", "", Progressive},
		{"progressive flac", "/music/song.flac", "", Progressive},
		{"query string ignored", "https://cdn.example.com/master.m3u8?token=abc", "", HLS},
		{"fragment ignored", "https://cdn.example.com/video.mpd#t=10", "", DASH},
		{"uppercase extension", "https://cdn.example.com/VIDEO.MPD", "", DASH},
		{"mime hint wins", "https://cdn.example.com/stream", "application/dash+xml", DASH},
		{"mime hint hls", "https://cdn.example.com/stream", "application/vnd.apple.mpegurl", HLS},
		{"mime hint case insensitive", "https://cdn.example.com/stream", "Application/X-MPEGURL", HLS},
		{"unknown mime falls back to extension", "https://cdn.example.com/clip.mp4", "text/plain", Progressive},
		{"no extension", "https://cdn.example.com/stream", "", Unknown},
		{"unrecognized extension", "video.xyz", "", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.uri, tt.mime); got != tt.want {
				t.Errorf("Infer(%q, %q) = %v, want %v", tt.uri, tt.mime, got, tt.want)
			}
		})
	}
}

func TestResolve_KnownTypes(t *testing.T) {
	m, err := Resolve("https://cdn.example.com/master.m3u8", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if m.Type != HLS {
		t.Errorf("Type = %v, want HLS", m.Type)
	}
	if m.URI != "https://cdn.example.com/master.m3u8" {
		t.Errorf("URI = %q", m.URI)
	}
}

func TestResolve_Unsupported(t *testing.T) {
	_, err := Resolve("video.xyz", "")
	if !errors.Is(err, ErrUnsupportedSourceType) {
		t.Errorf("Resolve() error = %v, want ErrUnsupportedSourceType", err)
	}
}

func TestContentType_String(t *testing.T) {
	tests := []struct {
		typ  ContentType
		want string
	}{
		{DASH, "dash"},
		{SmoothStreaming, "smooth_streaming"},
		{HLS, "hls"},
		{Progressive, "progressive"},
		{Unknown, "unknown"},
		{ContentType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
