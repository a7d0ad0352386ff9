package editcmd

import (
	"fmt"
	"log/slog"

	"layerdraw/imgio"
	"layerdraw/layer"
	"layerdraw/scene"

	"github.com/alecthomas/kong"
)

type LayerParams struct {
	File   string `arg:"" help:"Scene file"`
	Select int    `help:"Layer to act on" default:"0"`
}

type ImportParams struct {
	LayerParams
	Image string `arg:"" help:"Image to add as a new top layer" type:"existingfile"`
	At    string `help:"Canvas position of the image's top-left corner, as X,Y" default:"0,0"`
}

// LayerCmd edits the layer list of a scene.
type LayerCmd struct {
	Add struct {
		LayerParams
	} `cmd:"" help:"Append an empty layer"`
	Rm struct {
		LayerParams
	} `cmd:"" help:"Remove a layer"`
	Up struct {
		LayerParams
	} `cmd:"" help:"Move a layer one place toward the start of the list"`
	Down struct {
		LayerParams
	} `cmd:"" help:"Move a layer one place toward the end of the list"`
	Show struct {
		LayerParams
	} `cmd:"" help:"Make a layer visible"`
	Hide struct {
		LayerParams
	} `cmd:"" help:"Hide a layer"`
	Import ImportParams `cmd:"" help:"Add an image file as a new layer"`
}

func (c *LayerCmd) params(subCmd string) *LayerParams {
	switch subCmd {
	case "add":
		return &c.Add.LayerParams
	case "rm":
		return &c.Rm.LayerParams
	case "up":
		return &c.Up.LayerParams
	case "down":
		return &c.Down.LayerParams
	case "show":
		return &c.Show.LayerParams
	case "hide":
		return &c.Hide.LayerParams
	case "import":
		return &c.Import.LayerParams
	}
	return nil
}

func (c *LayerCmd) Validate(kctx *kong.Context) error {
	conf := c.params(kctx.Selected().Name)
	if conf == nil {
		return nil
	}
	var err error
	if conf.File, err = existingFile(conf.File); err != nil {
		return err
	}
	if conf.Select < 0 {
		return fmt.Errorf("invalid layer index: %d", conf.Select)
	}
	if kctx.Selected().Name == "import" {
		if _, err := ParsePoint(c.Import.At); err != nil {
			return err
		}
	}
	return nil
}

func (c *LayerCmd) Run(kctx *kong.Context, logger *slog.Logger) error {
	subCmd := kctx.Selected().Name
	conf := c.params(subCmd)
	logger = logger.With("file", conf.File, "op", subCmd)

	s, err := openScene(conf.File, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	switch subCmd {
	case "add":
		s.AddLayer()
	case "import":
		if err := importLayer(s, c.Import.Image, c.Import.At); err != nil {
			return err
		}
	default:
		if err := s.Select(conf.Select); err != nil {
			return fmt.Errorf("could not select layer %d: %w", conf.Select, err)
		}
		if err := editSelected(s, subCmd); err != nil {
			return err
		}
	}

	if err := s.Save(conf.File); err != nil {
		return err
	}
	logger.Info("scene updated", "layers", s.Len(), "selected", s.SelectedIndex())
	return nil
}

func editSelected(s *scene.Scene, subCmd string) error {
	i := s.SelectedIndex()
	switch subCmd {
	case "rm":
		if !s.CanRemoveSelected() {
			return fmt.Errorf("no layer to remove")
		}
		s.RemoveSelected()
	case "up":
		if !s.CanMoveUp() {
			return fmt.Errorf("layer %d is already first", i)
		}
		s.MoveSelectedUp()
	case "down":
		if !s.CanMoveDown() {
			return fmt.Errorf("layer %d is already last", i)
		}
		s.MoveSelectedDown()
	case "show":
		return s.SetLayerVisible(i, true)
	case "hide":
		return s.SetLayerVisible(i, false)
	}
	return nil
}

func importLayer(s *scene.Scene, imagePath, at string) error {
	pos, err := ParsePoint(at)
	if err != nil {
		return err
	}
	img, imgType, err := imgio.ReadFile(imagePath)
	if err != nil {
		return err
	}
	pixels := imgio.ToRGBA(img)
	snap := layer.Snapshot{
		Pixels:   pixels,
		Position: pos,
		Size:     pixels.Bounds().Size(),
		Visible:  true,
	}
	if err := s.AddLayerFrom(&snap); err != nil {
		return fmt.Errorf("could not import %s image %q: %w", imgType, imagePath, err)
	}
	return nil
}
