package ebitenhost

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"gallery-open", "gallery-open"},
		{"card 3/6", "card_3_6"},
		{"  ", "unlabeled"},
		{"", "unlabeled"},
		{"cover.v2", "cover.v2"},
		{"청첩장", "___"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.input); got != tt.expect {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	src := []byte{
		255, 0, 0, 255, // opaque red stays
		64, 32, 0, 128, // half-transparent orange
		0, 0, 0, 0, // fully transparent stays
	}
	dst := make([]byte, len(src))
	unpremultiply(dst, src)

	want := []byte{255, 0, 0, 255, 127, 63, 0, 128, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	h := NewHost(nil)
	h.Screenshot("cover")
	h.Screenshot("gallery")
	if len(h.shots) != 2 || h.shots[1] != "gallery" {
		t.Errorf("shots = %v", h.shots)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("PNG file is empty")
	}
}
