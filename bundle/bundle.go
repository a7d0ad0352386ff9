// Package bundle stores an ordered list of layer snapshots as a zip archive.
//
// The archive holds manifest.yaml followed by one PNG per layer. Layer PNGs
// carry the premultiplied RGBA bytes verbatim so a load returns exactly the
// pixels that were saved.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"layerdraw/editerr"
	"layerdraw/imgio"
	"layerdraw/layer"

	"github.com/h2non/filetype"
	"gopkg.in/yaml.v3"
)

// Version is the manifest version written by Encode.
const Version = 1

const (
	manifestName = "manifest.yaml"
	alphaMode    = "premultiplied"
)

type manifest struct {
	Version int          `yaml:"version"`
	Alpha   string       `yaml:"alpha"`
	Layers  []layerEntry `yaml:"layers"`
}

type layerEntry struct {
	File    string `yaml:"file"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Visible bool   `yaml:"visible"`
}

func layerFile(i int) string {
	return fmt.Sprintf("layers/%04d.png", i)
}

// Encode writes snaps to w, bottom layer first.
func Encode(w io.Writer, snaps []layer.Snapshot) error {
	m := manifest{Version: Version, Alpha: alphaMode, Layers: make([]layerEntry, len(snaps))}
	for i, s := range snaps {
		if s.Pixels == nil {
			return editerr.Argument("layer %d has no pixels", i)
		}
		if got := s.Pixels.Bounds().Size(); got != s.Size {
			return editerr.Dimension(fmt.Sprintf("layer %d pixels", i), got.X, got.Y)
		}
		m.Layers[i] = layerEntry{
			File:    layerFile(i),
			X:       s.Position.X,
			Y:       s.Position.Y,
			Width:   s.Size.X,
			Height:  s.Size.Y,
			Visible: s.Visible,
		}
	}

	zw := zip.NewWriter(w)
	mw, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("could not add manifest: %w", err)
	}
	enc := yaml.NewEncoder(mw)
	if err := enc.Encode(&m); err != nil {
		return fmt.Errorf("could not encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not encode manifest: %w", err)
	}

	for i, s := range snaps {
		lw, err := zw.Create(m.Layers[i].File)
		if err != nil {
			return fmt.Errorf("could not add layer %d: %w", i, err)
		}
		if err := imgio.Encode(lw, rawView(s.Pixels), imgio.PNG); err != nil {
			return fmt.Errorf("could not store layer %d: %w", i, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("could not finish bundle: %w", err)
	}
	return nil
}

// Decode reads a bundle of the given size from r.
func Decode(r io.ReaderAt, size int64) ([]layer.Snapshot, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, editerr.IO("corrupt bundle: %w", err)
	}

	var m manifest
	if err := readMember(zr, manifestName, func(rd io.Reader) error {
		return yaml.NewDecoder(rd).Decode(&m)
	}); err != nil {
		return nil, err
	}
	if m.Version != Version {
		return nil, editerr.IO("corrupt bundle: unsupported version %d", m.Version)
	}
	if m.Alpha != alphaMode {
		return nil, editerr.IO("corrupt bundle: unsupported alpha mode %q", m.Alpha)
	}

	snaps := make([]layer.Snapshot, len(m.Layers))
	for i, e := range m.Layers {
		if e.Width <= 0 || e.Height <= 0 {
			return nil, editerr.IO("corrupt bundle: layer %d has size %dx%d", i, e.Width, e.Height)
		}
		var img image.Image
		if err := readMember(zr, e.File, func(rd io.Reader) error {
			var decErr error
			img, decErr = png.Decode(rd)
			return decErr
		}); err != nil {
			return nil, err
		}
		pixels := fromRaw(img)
		if got := pixels.Bounds().Size(); got.X != e.Width || got.Y != e.Height {
			return nil, editerr.IO("corrupt bundle: layer %d is %dx%d, manifest says %dx%d",
				i, got.X, got.Y, e.Width, e.Height)
		}
		snaps[i] = layer.Snapshot{
			Pixels:   pixels,
			Position: image.Pt(e.X, e.Y),
			Size:     image.Pt(e.Width, e.Height),
			Visible:  e.Visible,
		}
	}
	return snaps, nil
}

func readMember(zr *zip.Reader, name string, read func(io.Reader) error) error {
	f, err := zr.Open(name)
	if err != nil {
		return editerr.IO("corrupt bundle: missing %s: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close bundle member", "name", name, "error", closeErr)
		}
	}()
	if err := read(f); err != nil {
		return editerr.IO("corrupt bundle: could not read %s: %w", name, err)
	}
	return nil
}

// WriteFile saves snaps to path, replacing it only once the whole bundle has
// been written.
func WriteFile(path string, snaps []layer.Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snaps); err != nil {
		return err
	}
	return imgio.WriteAtomic(path, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
}

// ReadFile loads the bundle stored at path.
func ReadFile(path string) ([]layer.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, editerr.IO("could not read bundle %q: %w", path, err)
	}
	if !filetype.Is(data, "zip") {
		kind, _ := filetype.Match(data)
		return nil, editerr.IO("corrupt bundle %q: not a zip archive (detected %q)", path, kind.Extension)
	}
	snaps, err := Decode(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", path, err)
	}
	return snaps, nil
}

// rawView presents premultiplied pixels as straight alpha so the PNG encoder
// writes the bytes unchanged.
func rawView(img *image.RGBA) *image.NRGBA {
	return &image.NRGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
}

// fromRaw undoes rawView on a decoded PNG. Fully opaque layers come back from
// the decoder as RGBA already.
func fromRaw(img image.Image) *image.RGBA {
	switch m := img.(type) {
	case *image.NRGBA:
		out := &image.RGBA{Pix: m.Pix, Stride: m.Stride, Rect: m.Rect}
		return imgio.ToRGBA(out)
	default:
		return imgio.ToRGBA(img)
	}
}
