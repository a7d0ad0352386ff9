package scene

import (
	"image"
	"image/color"
	"testing"

	"layerdraw/layer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func solid(t *testing.T, c color.RGBA, r image.Rectangle) *layer.Snapshot {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return &layer.Snapshot{Pixels: img, Position: r.Min, Size: r.Size(), Visible: true}
}

func TestRenderOrderAndVisibility(t *testing.T) {
	s := New()
	defer s.Close()
	require.NoError(t, s.AddLayerFrom(solid(t, red, image.Rect(0, 0, 4, 4))))
	require.NoError(t, s.AddLayerFrom(solid(t, green, image.Rect(2, 2, 6, 6))))

	out, err := s.Render(8, 8)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 8), out.Size())
	assert.Equal(t, red, out.RGBAAt(1, 1))
	assert.Equal(t, green, out.RGBAAt(3, 3), "later layers draw on top")
	assert.Equal(t, green, out.RGBAAt(5, 5))
	assert.Equal(t, white, out.RGBAAt(7, 7))

	require.NoError(t, s.SetLayerVisible(1, false))
	out, err = s.Render(8, 8)
	require.NoError(t, err)
	assert.Equal(t, red, out.RGBAAt(3, 3))
	assert.Equal(t, white, out.RGBAAt(5, 5))
}

func TestRenderIncludesPending(t *testing.T) {
	s := New()
	defer s.Close()
	s.AddLayer()
	s.SetColor(red)
	require.NoError(t, s.SetThickness(3))

	require.NoError(t, s.PressDown(image.Pt(4, 4)))
	out, err := s.Render(8, 8)
	require.NoError(t, err)
	assert.Equal(t, red, out.RGBAAt(4, 4))
}

func TestRenderNegativePosition(t *testing.T) {
	s := New()
	defer s.Close()
	require.NoError(t, s.AddLayerFrom(solid(t, red, image.Rect(-2, -2, 1, 1))))

	out, err := s.Render(3, 3)
	require.NoError(t, err)
	assert.Equal(t, red, out.RGBAAt(0, 0))
	assert.Equal(t, white, out.RGBAAt(1, 1))
}

func TestRenderEmptyAndInvalid(t *testing.T) {
	s := New()
	defer s.Close()

	out, err := s.Render(2, 2)
	require.NoError(t, err)
	assert.Equal(t, white, out.RGBAAt(1, 1))

	_, err = s.Render(0, 2)
	assert.Error(t, err)
}

func TestExtent(t *testing.T) {
	s := New()
	defer s.Close()
	assert.Equal(t, image.Rectangle{}, s.Extent())

	require.NoError(t, s.AddLayerFrom(solid(t, red, image.Rect(-2, 3, 1, 5))))
	require.NoError(t, s.AddLayerFrom(solid(t, red, image.Rect(4, 4, 10, 6))))
	assert.Equal(t, image.Rect(-2, 0, 10, 6), s.Extent())
}
