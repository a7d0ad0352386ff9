package editcmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/alecthomas/kong"
)

// InfoCmd lists the layers of a scene.
type InfoCmd struct {
	File string `arg:"" help:"Scene file"`
}

func (c *InfoCmd) Validate(kctx *kong.Context) (err error) {
	c.File, err = existingFile(c.File)
	return err
}

func (c *InfoCmd) Run(kctx *kong.Context, logger *slog.Logger) error {
	s, err := openScene(c.File, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ext := s.Extent()
	tw := tabwriter.NewWriter(kctx.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "canvas\t%dx%d\t(%d,%d)-(%d,%d)\n", ext.Max.X, ext.Max.Y, ext.Min.X, ext.Min.Y, ext.Max.X, ext.Max.Y)
	fmt.Fprintln(tw, "#\tx\ty\twidth\theight\tvisible")
	for i, l := range s.Layers() {
		pos, size := l.Position(), l.Size()
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%t\n", i, pos.X, pos.Y, size.X, size.Y, l.Visible())
	}
	return tw.Flush()
}
