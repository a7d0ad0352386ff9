package bundle

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"layerdraw/editerr"
	"layerdraw/layer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshots() []layer.Snapshot {
	a := image.NewRGBA(image.Rect(0, 0, 3, 2))
	a.SetRGBA(0, 0, color.RGBA{R: 0xff, A: 0xff})
	a.SetRGBA(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 40}) // partial alpha, premultiplied

	b := image.NewRGBA(image.Rect(0, 0, 1, 4))
	for i := range b.Pix {
		b.Pix[i] = 0xff
	}

	return []layer.Snapshot{
		{Pixels: a, Position: image.Pt(-4, 7), Size: image.Pt(3, 2), Visible: true},
		{Pixels: b, Position: image.Pt(0, 0), Size: image.Pt(1, 4), Visible: false},
	}
}

func decodeBytes(t *testing.T, data []byte) ([]layer.Snapshot, error) {
	t.Helper()
	return Decode(bytes.NewReader(data), int64(len(data)))
}

func TestRoundTrip(t *testing.T) {
	want := sampleSnapshots()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, want))

	got, err := decodeBytes(t, buf.Bytes())
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "layer %d", i)
		assert.Equal(t, want[i].Pixels.Pix, got[i].Pixels.Pix, "layer %d", i)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	got, err := decodeBytes(t, buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeRejectsBadSnapshot(t *testing.T) {
	snaps := sampleSnapshots()
	snaps[1].Size = image.Pt(2, 2)
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, snaps), editerr.ErrInvalidDimension)

	snaps = sampleSnapshots()
	snaps[0].Pixels = nil
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, snaps), editerr.ErrInvalidArgument)
}

// archive builds a zip from name/content pairs.
func archive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecodeCorrupt(t *testing.T) {
	var good bytes.Buffer
	require.NoError(t, Encode(&good, sampleSnapshots()[:1]))
	zr, err := zip.NewReader(bytes.NewReader(good.Bytes()), int64(good.Len()))
	require.NoError(t, err)
	var layerPNG []byte
	for _, f := range zr.File {
		if f.Name == layerFile(0) {
			rc, err := f.Open()
			require.NoError(t, err)
			var b bytes.Buffer
			_, err = b.ReadFrom(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			layerPNG = b.Bytes()
		}
	}
	require.NotEmpty(t, layerPNG)

	manifest := func(version int, width int) string {
		return "version: " + strconv.Itoa(version) + "\nalpha: premultiplied\nlayers:\n" +
			"  - file: layers/0000.png\n    x: 0\n    y: 0\n    width: " + strconv.Itoa(width) + "\n    height: 2\n    visible: true\n"
	}

	for name, data := range map[string][]byte{
		"not a zip":        []byte("hello"),
		"no manifest":      archive(t, map[string]string{"layers/0000.png": string(layerPNG)}),
		"bad yaml":         archive(t, map[string]string{manifestName: "version: [", "layers/0000.png": string(layerPNG)}),
		"unknown version":  archive(t, map[string]string{manifestName: manifest(2, 3), "layers/0000.png": string(layerPNG)}),
		"size mismatch":    archive(t, map[string]string{manifestName: manifest(1, 4), "layers/0000.png": string(layerPNG)}),
		"missing layer":    archive(t, map[string]string{manifestName: manifest(1, 3)}),
		"layer not a png":  archive(t, map[string]string{manifestName: manifest(1, 3), "layers/0000.png": "nope"}),
		"zero sized layer": archive(t, map[string]string{manifestName: manifest(1, 0), "layers/0000.png": string(layerPNG)}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := decodeBytes(t, data)
			assert.ErrorIs(t, err, editerr.ErrIO)
		})
	}

	// the hand-written manifest itself is accepted
	_, err = decodeBytes(t, archive(t, map[string]string{manifestName: manifest(1, 3), "layers/0000.png": string(layerPNG)}))
	assert.NoError(t, err)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.ldz")
	want := sampleSnapshots()

	require.NoError(t, WriteFile(path, want))
	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, want[1].Equal(got[1]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	_, err = ReadFile(filepath.Join(dir, "missing.ldz"))
	assert.ErrorIs(t, err, editerr.ErrIO)

	png := filepath.Join(dir, "image.ldz")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000000000000000"), 0o644))
	_, err = ReadFile(png)
	assert.ErrorIs(t, err, editerr.ErrIO)
}
