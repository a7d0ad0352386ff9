package swatch

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"

	"layerdraw/editerr"
	"layerdraw/imgio"

	"golang.org/x/image/riff"
)

// Microsoft RIFF palette: a "PAL " form holding "data" chunks, each a
// LOGPALETTE (version, entry count, then R G B flags per entry).

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const palVersion = 0x0300

// Decode reads every palette chunk of a RIFF PAL stream and concatenates
// their entries.
func Decode(r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", formType[:])
	}
	return decodeChunks(rd, nil)
}

func decodeChunks(rd *riff.Reader, p Palette) (Palette, error) {
	for {
		id, size, data, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return p, fmt.Errorf("could not read chunk %d: %w", len(p), err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return p, fmt.Errorf("could not read list chunk: %w", err)
			}
			if listType != palType {
				return p, fmt.Errorf("unsupported list type: %q", listType[:])
			}
			if p, err = decodeChunks(list, p); err != nil {
				return p, err
			}
		case dataType:
			entries, err := decodeLogPalette(data)
			if err != nil {
				return p, err
			}
			p = append(p, entries...)
		default:
			return p, fmt.Errorf("unsupported chunk type: %q", id[:])
		}
	}
}

func decodeLogPalette(r io.Reader) (Palette, error) {
	var hdr struct {
		Version uint16
		Count   uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}
	if hdr.Version != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %#04x", hdr.Version)
	}

	raw := make([]byte, 4*int(hdr.Count))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("could not read %d palette entries: %w", hdr.Count, err)
	}
	p := make(Palette, hdr.Count)
	for i := range p {
		e := raw[4*i:]
		p[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}
	return p, nil
}

// Encode writes p as a RIFF PAL stream with a single palette chunk.
func Encode(w io.Writer, p Palette) error {
	if len(p) > 0xffff {
		return editerr.Argument("palette has %d entries, at most %d fit", len(p), 0xffff)
	}

	chunk := binary.LittleEndian.AppendUint16(nil, palVersion)
	chunk = binary.LittleEndian.AppendUint16(chunk, uint16(len(p)))
	for _, c := range p {
		chunk = append(chunk, c.R, c.G, c.B, 0)
	}

	var buf bytes.Buffer
	buf.Write(riffType[:])
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(4+8+len(chunk))))
	buf.Write(palType[:])
	buf.Write(dataType[:])
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(chunk))))
	buf.Write(chunk)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("could not write palette: %w", err)
	}
	return nil
}

// ReadFile loads a RIFF PAL file.
func ReadFile(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, editerr.IO("could not open palette %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette", "file", path, "error", closeErr)
		}
	}()

	p, err := Decode(f)
	if err != nil {
		return nil, editerr.IO("could not load palette %q: %w", path, err)
	}
	return p, nil
}

// WriteFile stores p at path as a RIFF PAL file.
func WriteFile(path string, p Palette) error {
	return imgio.WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, p)
	})
}
