package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"layerdraw/config"
	"layerdraw/editcmd"
	"layerdraw/exportcmd"
	"layerdraw/parallel"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config   kong.ConfigFlag `help:"Configuration file (TOML)"`
	LogLevel string          `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Workers  int             `help:"Parallel workers for batch jobs, 0 for one per CPU" default:"0"`

	New   editcmd.NewCmd   `cmd:"" help:"Create a scene file"`
	Info  editcmd.InfoCmd  `cmd:"" help:"List the layers of a scene"`
	Layer editcmd.LayerCmd `cmd:"" help:"Edit the layer list of a scene"`
	Draw  editcmd.DrawCmd  `cmd:"" help:"Draw a stroke, or pan a layer, along a pointer path"`

	Swatch editcmd.SwatchCmd `cmd:"" help:"Write a swatch palette and render its picker strip"`

	Export exportcmd.ExportCmd `cmd:"" help:"Render a scene into an image"`
	Batch  exportcmd.BatchCmd  `cmd:"" help:"Render every scene of a folder"`
	Watch  exportcmd.WatchCmd  `cmd:"" help:"Render a scene again whenever it changes"`
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("layerdraw"),
		kong.Description("Layered raster drawing from the command line."),
		kong.UsageOnError(),
		kong.Configuration(config.TOML, config.Paths()...),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	logger, err := newLogger(cli.LogLevel)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)

	pool := parallel.Start(cli.Workers)
	logger.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	err = kctx.Run(logger, parallel.WorkerFunc(pool.Do), parallel.WaitFunc(pool.Wait))
	pool.Wait()
	kctx.FatalIfErrorf(err)
}
