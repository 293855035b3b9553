package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/config"
	"github.com/go-drift/elevation/pkg/elevation"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/graphics/raster"
	"github.com/go-drift/elevation/pkg/resource"
)

func runRender(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	dir, name, err := resourceArgs(cmd)
	if err != nil {
		return err
	}
	cfg, err := env.settings(dir)
	if err != nil {
		return err
	}
	table := loadTable(env, cfg, dir)

	states, err := parseStates(cmd.String("state"))
	if err != nil {
		return err
	}
	width, height := int(cmd.Int("width")), int(cmd.Int("height"))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid view size %dx%d", width, height)
	}

	el, err := elevation.New(elevation.Options{
		NativeElevation: cmd.Bool("native"),
		Loader:          table,
		CornerRadius:    cmd.Float("radius") * cfg.Density,
		Elevation:       cmd.Float("elevation") * cfg.Density,
		Metrics:         cfg.Metrics(),
		MaxDepth:        cfg.MaxDepth,
		Logger:          env.Log,
	})
	if err != nil {
		return fmt.Errorf("unable to create elevation: %w", err)
	}
	if err := setBackground(el, table, name); err != nil {
		return err
	}
	el.SetDrawableState(states)
	el.OnSizeChanged(float64(width), float64(height))

	canvas := raster.New(width, height)
	defer canvas.Close()
	el.Draw(canvas)
	if err := canvas.Err(); err != nil {
		return fmt.Errorf("unable to draw %s: %w", name, err)
	}

	fname := cmd.String("out")
	if len(fname) == 0 {
		fname = outputName(name)
	}
	if err := writePNG(fname, canvas, cmd.Float("scale")); err != nil {
		return err
	}

	env.Log.Info("Rendered background",
		zap.String("name", name),
		zap.Stringer("state", el.State()),
		zap.String("padding", formatInsets(el.Padding())),
		zap.String("file", fname))
	if ms := el.MinSize(); float64(width) < ms.Width || float64(height) < ms.Height {
		env.Log.Warn("View is smaller than the shadow minimum",
			zap.Float64("min_width", ms.Width),
			zap.Float64("min_height", ms.Height))
	}
	return nil
}

func writePNG(fname string, canvas *raster.Canvas, scale float64) (err error) {
	out, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close '%s': %w", fname, er))
		}
	}()

	if scale == 1 {
		err = canvas.EncodePNG(out)
	} else {
		err = png.Encode(out, raster.Scale(canvas.Image(), scale))
	}
	if err != nil {
		return fmt.Errorf("unable to write '%s': %w", fname, err)
	}
	return nil
}

func outputName(name string) string {
	name = strings.TrimPrefix(strings.TrimPrefix(name, "@"), "#")
	return strings.ReplaceAll(name, "/", "_") + ".png"
}

func resourceArgs(cmd *cli.Command) (dir, name string, err error) {
	if cmd.Args().Len() != 2 {
		return "", "", fmt.Errorf("expected RESOURCES and NAME, got %d arguments", cmd.Args().Len())
	}
	return cmd.Args().Get(0), cmd.Args().Get(1), nil
}

// loadTable loads a resource directory. Broken files are logged and
// skipped.
func loadTable(env *env, cfg *config.Resolved, dir string) *resource.Table {
	table := resource.NewTable(env.Log)
	table.Density = cfg.Density
	if err := table.LoadDir(dir); err != nil {
		for _, er := range multierr.Errors(err) {
			env.Log.Warn("Skipping resource", zap.Error(er))
		}
	}
	return table
}

// setBackground assigns name, a resource or a literal color, to el.
func setBackground(el elevation.Elevator, table *resource.Table, name string) error {
	if strings.HasPrefix(name, "#") {
		c, err := graphics.ParseColor(name)
		if err != nil {
			return fmt.Errorf("invalid background color: %w", err)
		}
		el.SetBackgroundColor(c)
		return nil
	}
	id, ok := table.Lookup(name)
	if !ok {
		return fmt.Errorf("resource %q not found", name)
	}
	el.SetBackgroundResource(id)
	return nil
}

func parseStates(s string) (resource.State, error) {
	var states resource.State
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		st, ok := resource.StateByName(strings.TrimPrefix(name, "state_"))
		if !ok {
			return 0, fmt.Errorf("unknown view state %q", name)
		}
		states |= st
	}
	return states, nil
}
