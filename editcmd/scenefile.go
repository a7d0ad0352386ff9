package editcmd

import (
	"fmt"
	"log/slog"
	"os"

	"layerdraw/config"
	"layerdraw/scene"
)

// Ext is the file extension of saved scenes.
const Ext = ".ldz"

func openScene(path string, logger *slog.Logger) (*scene.Scene, error) {
	s, err := scene.Load(path, scene.WithLogger(logger.With("file", path)))
	if err != nil {
		return nil, fmt.Errorf("could not open scene %q: %w", path, err)
	}
	return s, nil
}

// existingFile expands path and checks it names a regular file.
func existingFile(path string) (string, error) {
	abs, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("not a regular file")
	}
	if err != nil {
		return "", fmt.Errorf("invalid scene path %q: %w", path, err)
	}
	return abs, nil
}
