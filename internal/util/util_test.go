package util

import (
	"slices"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes under kilobyte", bytes: 512, expected: "512 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "upload limit", bytes: 5 << 20, expected: "5.0 MB"},
		{name: "gigabyte", bytes: 5 * 1024 * 1024 * 1024, expected: "5.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Fatalf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "cover.png", expected: "cover.png"},
		{name: "unix path", input: "../../etc/passwd", expected: "passwd"},
		{name: "windows path", input: `C:\Users\me\photo.jpg`, expected: "photo.jpg"},
		{name: "spaces and unicode", input: "my café pic.png", expected: "my_caf__pic.png"},
		{name: "hidden file", input: ".htaccess", expected: "htaccess"},
		{name: "dot dot", input: "..", expected: ""},
		{name: "empty", input: "", expected: ""},
		{name: "only symbols", input: "???", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	got := NormalizeTags([]string{" go", "", "blog ", "   "})
	if want := []string{"go", "blog"}; !slices.Equal(got, want) {
		t.Fatalf("NormalizeTags() = %v, want %v", got, want)
	}

	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Fatalf("NormalizeTags(nil) = %v, want empty non-nil slice", got)
	}
}
