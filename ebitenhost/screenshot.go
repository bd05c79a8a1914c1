package ebitenhost

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir with a timestamped filename. Scripts typically
// call it from ScriptRunner.OnMark.
func (h *Host) Screenshot(label string) {
	h.shots = append(h.shots, label)
}

// flushScreenshots captures screen once for every queued label. Called by
// Run after the frame is drawn.
func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.shots) == 0 {
		return
	}
	defer func() { h.shots = h.shots[:0] }()

	dir := h.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[keepsake] screenshot: mkdir %s: %v\n", dir, err)
		return
	}

	img := readFrame(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range h.shots {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[keepsake] screenshot: %v\n", err)
		}
	}
}

// readFrame copies screen into a straight-alpha image.
func readFrame(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(img.Pix, pixels)
	return img
}

// unpremultiply converts premultiplied RGBA in src to straight alpha in dst.
func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i], dst[i+1], dst[i+2], dst[i+3] = r, g, b, a
	}
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything
// else with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
