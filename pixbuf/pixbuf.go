// Package pixbuf implements the fixed-size RGBA raster used for layer content
// and in-progress strokes.
package pixbuf

import (
	"bytes"
	"image"
	"image/color"

	"layerdraw/editerr"

	"golang.org/x/image/draw"
)

// Buffer is an owned 32 bit RGBA raster anchored at (0, 0).
// Its dimensions never change; resizing produces a new Buffer.
type Buffer struct {
	img *image.RGBA
}

// New returns a transparent width x height buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, editerr.Dimension("pixel buffer", width, height)
	}
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// FromImage copies img into a new buffer of the same size. The source origin
// is mapped to (0, 0).
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, editerr.Argument("nil image")
	}
	sr := img.Bounds()
	b, err := New(sr.Dx(), sr.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(b.img, b.img.Bounds(), img, sr.Min, draw.Src)
	return b, nil
}

func (b *Buffer) Width() int  { return b.img.Rect.Dx() }
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Size returns the buffer dimensions as (width, height).
func (b *Buffer) Size() image.Point { return b.img.Rect.Size() }

func (b *Buffer) Bounds() image.Rectangle { return b.img.Rect }

// Image exposes the backing raster. Writes through it modify the buffer.
func (b *Buffer) Image() *image.RGBA { return b.img }

// RGBAAt returns the premultiplied pixel at (x, y), transparent outside.
func (b *Buffer) RGBAAt(x, y int) color.RGBA { return b.img.RGBAAt(x, y) }

// Fill paints every pixel with c, replacing the previous content.
func (b *Buffer) Fill(c color.Color) {
	draw.Draw(b.img, b.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	img := image.NewRGBA(b.img.Rect)
	copy(img.Pix, b.img.Pix)
	return &Buffer{img: img}
}

// Equal reports whether both buffers have the same size and identical bytes.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.img.Rect == o.img.Rect && bytes.Equal(b.img.Pix, o.img.Pix)
}

// ResizeWithOffsetCopy allocates a width x height buffer and copies the
// receiver into it with its top-left corner at (dx, dy). Anything falling
// outside the new bounds is clipped. The receiver is left untouched.
func (b *Buffer) ResizeWithOffsetCopy(width, height, dx, dy int) (*Buffer, error) {
	if dx < 0 || dy < 0 {
		return nil, editerr.Argument("negative copy offset (%d,%d)", dx, dy)
	}
	nb, err := New(width, height)
	if err != nil {
		return nil, err
	}
	draw.Draw(nb.img, b.img.Rect.Add(image.Pt(dx, dy)), b.img, image.Point{}, draw.Src)
	return nb, nil
}

// BlitOver composites src over the receiver with src's origin at (x, y).
// Opaque source pixels replace the destination, transparent ones leave it.
func (b *Buffer) BlitOver(src *Buffer, x, y int) {
	if src == nil {
		return
	}
	draw.Draw(b.img, src.img.Rect.Add(image.Pt(x, y)), src.img, image.Point{}, draw.Over)
}
