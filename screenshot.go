package panzoom

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshotter writes labelled frames to PNG files. Labels are queued during
// Update, for example by a ScriptRunner, and captured by Flush at the end of
// Draw.
type Screenshotter struct {
	// Dir is the output directory, created on first use.
	Dir string

	log   *zap.Logger
	now   func() time.Time
	queue []string
}

// NewScreenshotter creates a Screenshotter writing into dir. log may be nil.
func NewScreenshotter(dir string, log *zap.Logger) *Screenshotter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Screenshotter{Dir: dir, log: log, now: time.Now}
}

// Queue requests a capture of the next drawn frame.
func (s *Screenshotter) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued captures.
func (s *Screenshotter) Pending() int {
	return len(s.queue)
}

// Flush captures screen once for every queued label and returns the written
// paths. Failures are logged and skipped.
func (s *Screenshotter) Flush(screen *ebiten.Image) []string {
	if len(s.queue) == 0 {
		return nil
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	return s.write(unpremultiply(pixels, b.Dx(), b.Dy()))
}

func (s *Screenshotter) write(img *image.NRGBA) []string {
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.log.Warn("screenshot directory", zap.String("dir", s.Dir), zap.Error(err))
		return nil
	}

	stamp := s.now().Format("20060102_150405")
	var paths []string
	for i, label := range s.queue {
		name := fmt.Sprintf("%s_%02d_%s.png", stamp, i, sanitizeLabel(label))
		path := filepath.Join(s.Dir, name)
		if err := writePNG(path, img); err != nil {
			s.log.Warn("screenshot", zap.String("label", label), zap.Error(err))
			continue
		}
		s.log.Info("screenshot saved", zap.String("path", path))
		paths = append(paths, path)
	}
	return paths
}

// unpremultiply converts ebiten's premultiplied RGBA pixels into a
// straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
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

// sanitizeLabel keeps letters, digits, '-' and '.', replaces everything else
// with '_' and names empty labels "unlabeled".
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
