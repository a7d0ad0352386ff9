package imgio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"layerdraw/editerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"out":          PNG,
		"out.png":      PNG,
		"dir/OUT.PNG":  PNG,
		"out.bmp":      BMP,
		"out.tif":      TIFF,
		"out.tiff":     TIFF,
		"out.jpg":      JPEG,
		"out.jpeg":     JPEG,
		"out.gif":      GIF,
		"a.b/out.tiff": TIFF,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("out.webp")
	assert.ErrorIs(t, err, editerr.ErrInvalidArgument)
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 100), B: 0x80, A: 0xff})
		}
	}
	return img
}

func TestLosslessFormats(t *testing.T) {
	dir := t.TempDir()
	src := testImage()
	for _, f := range []Format{PNG, BMP, TIFF} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(dir, "img."+string(f))
			require.NoError(t, WriteFile(path, src, f))

			img, kind, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(f), kind)
			assert.Equal(t, src.Pix, ToRGBA(img).Pix)
		})
	}
}

func TestLossyFormats(t *testing.T) {
	for _, f := range []Format{JPEG, GIF} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, testImage(), f), f)
		img, kind, err := image.Decode(&buf)
		require.NoError(t, err, f)
		assert.Equal(t, string(f), kind)
		assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	}

	assert.ErrorIs(t, Encode(io.Discard, testImage(), Format("xcf")), editerr.ErrInvalidArgument)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	failure := errors.New("boom")
	err := WriteAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.ErrorIs(t, err, editerr.ErrIO)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data), "failed writes leave the target alone")

	require.NoError(t, WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("new"))
		return err
	}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := ReadFile(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, editerr.ErrIO)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, _, err = ReadFile(junk)
	assert.ErrorIs(t, err, editerr.ErrIO)
}

func TestToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{R: 0xff, A: 0xff})

	got := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, got.RGBAAt(0, 0))

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, rgba, ToRGBA(rgba))
}
