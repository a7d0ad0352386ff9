package exportcmd

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"layerdraw/imgio"
	"layerdraw/parallel"

	"github.com/alecthomas/kong"
)

// SceneExt is the extension batch looks for.
const SceneExt = ".ldz"

// BatchCmd exports every scene of a folder.
type BatchCmd struct {
	Scan   string `help:"Folder to scan for scene files" default:"."`
	Dest   string `help:"Destination folder for exported images. Relative to scan dir if not absolute." default:"exported"`
	Format string `help:"Output format" enum:"png,bmp,tiff,jpeg,gif" default:"png"`
	Width  int    `help:"Canvas width, defaults to each scene's extent" default:"0"`
	Height int    `help:"Canvas height, defaults to each scene's extent" default:"0"`
}

func (c *BatchCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid canvas size: %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c *BatchCmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc, logger *slog.Logger) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	ext := "." + string(imgio.Format(c.Format))
	var exportedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), SceneExt) {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				src := filepath.Join(c.Scan, fileName)
				dst := filepath.Join(c.Dest, strings.TrimSuffix(fileName, filepath.Ext(fileName))+ext)
				fileLog := logger.With("file", src)

				size, err := Export(src, dst, image.Pt(c.Width, c.Height), fileLog)
				if err != nil {
					errCount.Add(1)
					fileLog.Error("could not export scene", "out", dst, "error", err)
					return
				}
				exportedCount.Add(1)
				fileLog.Debug("scene exported", "out", dst, "width", size.X, "height", size.Y)
			}
		}(file.Name()))
	}

	wait()

	exported := exportedCount.Load()
	errors := errCount.Load()
	logger.Info("stats", "exported", exported, "errors", errors, "total", exported+errors)

	if errors > 0 {
		return fmt.Errorf("error exporting %d scenes", errors)
	}
	return nil
}
