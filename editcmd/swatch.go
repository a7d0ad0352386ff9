package editcmd

import (
	"fmt"
	"log/slog"

	"layerdraw/config"
	"layerdraw/imgio"
	"layerdraw/swatch"

	"github.com/alecthomas/kong"
)

// SwatchCmd writes a palette file for draw --palette and can render the
// picker strip built from it.
type SwatchCmd struct {
	Out     string   `arg:"" help:"RIFF PAL file to write"`
	Palette string   `help:"RIFF PAL file to start from instead of the default swatches" type:"existingfile"`
	Add     []string `help:"Colors to append, in any --color form of draw" sep:"none"`
	Strip   string   `help:"Also render the picker strip into this image"`
	Width   int      `help:"Strip width" default:"256"`
	Height  int      `help:"Strip height" default:"32"`

	Colors swatch.Palette `kong:"-"`
}

func (c *SwatchCmd) Validate(kctx *kong.Context) error {
	var err error
	if c.Out, err = config.ExpandPath(c.Out); err != nil {
		return err
	}
	if c.Strip != "" {
		if c.Strip, err = config.ExpandPath(c.Strip); err != nil {
			return err
		}
		if _, err := imgio.FormatFromPath(c.Strip); err != nil {
			return err
		}
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("invalid strip size: %dx%d", c.Width, c.Height)
		}
	}

	c.Colors = append(swatch.Palette(nil), swatch.Default...)
	if c.Palette != "" {
		if c.Colors, err = swatch.ReadFile(c.Palette); err != nil {
			return err
		}
	}
	for _, s := range c.Add {
		col, err := ParseColor(s, c.Colors)
		if err != nil {
			return err
		}
		c.Colors = append(c.Colors, col)
	}
	return nil
}

func (c *SwatchCmd) Run(logger *slog.Logger) error {
	if err := swatch.WriteFile(c.Out, c.Colors); err != nil {
		return fmt.Errorf("could not save palette: %w", err)
	}
	logger.Info("palette written", "file", c.Out, "colors", len(c.Colors))

	if c.Strip == "" {
		return nil
	}
	format, _ := imgio.FormatFromPath(c.Strip)
	img := swatch.NewStrip(c.Colors).Image(c.Width, c.Height)
	if err := imgio.WriteFile(c.Strip, img, format); err != nil {
		return fmt.Errorf("could not render picker strip: %w", err)
	}
	logger.Info("picker strip rendered", "file", c.Strip, "width", c.Width, "height", c.Height)
	return nil
}
