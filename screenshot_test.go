package panzoom

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"after-throw", "after-throw"},
		{"zoom.2", "zoom.2"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#", "special___"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		100, 50, 0, 255, // opaque: unchanged
		64, 32, 0, 128, // half alpha: doubled
		0, 0, 0, 0, // transparent: unchanged
	}
	img := unpremultiply(pixels, 3, 1)
	assert.Equal(t, []byte{100, 50, 0, 255}, img.Pix[0:4])
	assert.Equal(t, []byte{127, 63, 0, 128}, img.Pix[4:8])
	assert.Equal(t, []byte{0, 0, 0, 0}, img.Pix[8:12])
}

func TestScreenshotterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshotter(dir, nil)
	s.now = func() time.Time { return t0 }

	s.Queue("before zoom")
	s.Queue("")
	require.Equal(t, 2, s.Pending())

	img := unpremultiply(make([]byte, 4*4*2), 4, 2)
	paths := s.write(img)
	require.Equal(t, []string{
		filepath.Join(dir, "20240101_120000_00_before_zoom.png"),
		filepath.Join(dir, "20240101_120000_01_unlabeled.png"),
	}, paths)
	assert.Zero(t, s.Pending())

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())
	assert.Equal(t, 2, decoded.Bounds().Dy())
}
