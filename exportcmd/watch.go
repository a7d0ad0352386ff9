package exportcmd

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"layerdraw/config"
	"layerdraw/imgio"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
)

// WatchCmd re-exports a scene every time its file changes.
type WatchCmd struct {
	File   string `arg:"" help:"Scene file to watch"`
	Out    string `arg:"" help:"Output image"`
	Width  int    `help:"Canvas width, defaults to the scene extent" default:"0"`
	Height int    `help:"Canvas height, defaults to the scene extent" default:"0"`
}

func (c *WatchCmd) Validate(kctx *kong.Context) error {
	var err error
	if c.File, err = config.ExpandPath(c.File); err != nil {
		return err
	}
	if c.Out, err = config.ExpandPath(c.Out); err != nil {
		return err
	}
	if _, err := imgio.FormatFromPath(c.Out); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid canvas size: %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c *WatchCmd) Run(ctx context.Context, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("could not close file watcher", "error", closeErr)
		}
	}()

	// Saves replace the file through a rename, so watch the folder.
	dir := filepath.Dir(c.File)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch folder %q: %w", dir, err)
	}

	logger = logger.With("file", c.File, "out", c.Out)
	return Watch(ctx, watcher.Events, watcher.Errors, c.File, func() {
		size, err := Export(c.File, c.Out, image.Pt(c.Width, c.Height), logger)
		if err != nil {
			logger.Error("could not export scene", "error", err)
			return
		}
		logger.Info("scene exported", "width", size.X, "height", size.Y)
	}, logger)
}

// Watch calls export once, then again for every event that creates or
// writes file, until ctx is done or events is closed.
func Watch(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error,
	file string, export func(), logger *slog.Logger,
) error {
	export()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(file) {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
				logger.Debug("scene changed", "op", ev.Op.String())
				export()
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Error("file watcher failed", "error", err)
		}
	}
}
