package swatch

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"layerdraw/editerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAt(t *testing.T) {
	c, err := Default.At(5)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 0x80, A: 0xff}, c)

	for _, i := range []int{-1, len(Default)} {
		_, err := Default.At(i)
		assert.ErrorIs(t, err, editerr.ErrInvalidArgument, i)
	}
}

func TestNearest(t *testing.T) {
	i, c := Default.Nearest(color.RGBA{R: 250, G: 10, B: 10, A: 0xff})
	assert.Equal(t, 3, i)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, c)

	i, _ = Default.Nearest(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	assert.Equal(t, 6, i)

	i, _ = Default.Nearest(color.RGBA{G: 0x70, B: 0x08, A: 0xff})
	assert.Equal(t, 5, i)

	i, _ = Palette{}.Nearest(color.Black)
	assert.Equal(t, -1, i)
}

func assertClose(t *testing.T, want, got color.RGBA) {
	t.Helper()
	for _, d := range []int{
		int(want.R) - int(got.R),
		int(want.G) - int(got.G),
		int(want.B) - int(got.B),
	} {
		assert.LessOrEqual(t, d*d, 1, "want %v, got %v", want, got)
	}
	assert.Equal(t, uint8(0xff), got.A)
}

func TestMix(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	assertClose(t, red, Mix(red, blue, 0))
	assertClose(t, blue, Mix(red, blue, 1))
	assertClose(t, blue, Mix(red, blue, 3))
	assertClose(t, red, Mix(red, blue, -1))

	mid := Mix(red, blue, 0.5)
	assert.Greater(t, mid.R, uint8(0x40))
	assert.Greater(t, mid.B, uint8(0x40))
}

func TestStrip(t *testing.T) {
	s := NewStrip(nil)
	require.Equal(t, Default, s.Colors)

	const width, height = 60, 10
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"left edge", 0, 0, color.RGBA{A: 0xff}},
		{"black to blue", 5, 0, color.RGBA{B: 127, A: 0xff}},
		{"blue to yellow", 15, 0, color.RGBA{R: 127, G: 127, B: 127, A: 0xff}},
		{"lower half", 5, 6, color.RGBA{A: 0xff}},
		{"lower half blue", 15, 9, color.RGBA{B: 0xff, A: 0xff}},
		{"right edge", 60, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"past right edge", 80, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"past left edge", -3, 0, color.RGBA{A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ColorAt(tt.x, tt.y, width, height))
		})
	}

	assert.Equal(t, 0, s.Index(9, width))
	assert.Equal(t, 1, s.Index(10, width))
	assert.Equal(t, 6, s.Index(width, width))
	assert.Equal(t, 0, s.Index(5, 0))
}

func TestStripSingleColor(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	s := NewStrip(Palette{red})
	assert.Equal(t, red, s.ColorAt(30, 0, 60, 10))
	assert.Equal(t, 0, s.Index(30, 60))
}

func TestRIFF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Default))
	assert.Equal(t, "RIFF", buf.String()[:4])
	assert.Equal(t, "PAL data", buf.String()[8:16])

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default, got)

	buf.Reset()
	require.NoError(t, Encode(&buf, Palette{}))
	got, err = Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeRejects(t *testing.T) {
	wave := []byte("RIFF\x04\x00\x00\x00WAVE")
	_, err := Decode(bytes.NewReader(wave))
	assert.ErrorContains(t, err, "unsupported RIFF content type")

	badVersion := []byte("RIFF\x10\x00\x00\x00PAL data\x04\x00\x00\x00\x00\x01\x00\x00")
	_, err = Decode(bytes.NewReader(badVersion))
	assert.ErrorContains(t, err, "unsupported palette version")

	_, err = Decode(bytes.NewReader([]byte("junk")))
	assert.Error(t, err)
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.pal")
	p := Palette{{R: 1, G: 2, B: 3, A: 0xff}, {R: 0xfe, G: 0x80, B: 0x10, A: 0xff}}
	require.NoError(t, WriteFile(path, p))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.pal"))
	assert.ErrorIs(t, err, editerr.ErrIO)
}

func TestStripImage(t *testing.T) {
	s := NewStrip(nil)
	img := s.Image(60, 10)
	assert.Equal(t, image.Rect(0, 0, 60, 10), img.Bounds())
	assert.Equal(t, color.RGBA{B: 127, A: 0xff}, img.RGBAAt(5, 0))
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(5, 9))
	assert.Equal(t, Default[5], img.RGBAAt(59, 9))
}
