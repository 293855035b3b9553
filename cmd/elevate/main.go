// Command elevate renders drawable backgrounds with an emulated elevation
// shadow and inspects how they resolve.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/config"
	"github.com/go-drift/elevation/pkg/errors"
)

const appName = "elevate"

var version = "dev"

// env is the state shared by all commands.
type env struct {
	Cfg *config.Resolved
	Log *zap.Logger

	// cfgFile is set when --config was given; commands then ignore any
	// elevation.yaml found next to the resources.
	cfgFile bool
	debug   bool
	start   time.Time
	errOut  io.Writer
}

type envKey struct{}

func contextWithEnv(ctx context.Context, errOut io.Writer) context.Context {
	return context.WithValue(ctx, envKey{}, &env{start: time.Now(), errOut: errOut})
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{start: time.Now(), errOut: os.Stderr}
}

// settings returns the configuration for a resource directory.
func (e *env) settings(dir string) (*config.Resolved, error) {
	if e.cfgFile {
		return e.Cfg, nil
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	return cfg, nil
}

// initializeAppContext prepares configuration and logging after the command
// line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	env := envFromContext(ctx)
	env.debug = cmd.Bool("debug")

	if fname := cmd.String("config"); len(fname) > 0 {
		if env.Cfg, err = config.LoadFile(fname); err != nil {
			return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
		}
		env.cfgFile = true
	} else if env.Cfg, err = (&config.Settings{}).Resolve(); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	level := env.Cfg.LogLevel
	if env.debug {
		level = "debug"
	}
	env.Log = config.NewLogger(level, env.errOut, env.errOut)
	errors.SetHandler(&errors.LogHandler{Log: env.Log, Verbose: env.debug})

	env.Log.Debug("Program started",
		zap.Strings("args", cmd.Args().Slice()),
		zap.String("ver", version),
		zap.String("runtime", runtime.Version()))
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	errors.SetHandler(nil)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", time.Since(env.start)))
		if er := env.Log.Sync(); er != nil && !isInvalidSync(er) {
			err = multierr.Append(err, fmt.Errorf("unable to sync log: %w", er))
		}
	}
	return
}

// isInvalidSync filters the error returned when syncing a terminal.
func isInvalidSync(err error) bool {
	return multierr.Every(err, syscall.EINVAL) || multierr.Every(err, syscall.ENOTTY)
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := envFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "renders drawable backgrounds with emulated elevation shadows",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Writer:          out,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML) instead of RESOURCES/elevation.yaml"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log geometry rebuilds, state changes and recovered resource errors"},
		},
		Commands: []*cli.Command{
			{
				Name:         "render",
				Usage:        "Draws a background and its shadow to a PNG file",
				OnUsageError: usageErrorHandler,
				Action:       runRender,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Value: 200, Usage: "view width in `PIXELS`"},
					&cli.IntFlag{Name: "height", Value: 120, Usage: "view height in `PIXELS`"},
					&cli.FloatFlag{Name: "elevation", Aliases: []string{"e"}, Value: 8, Usage: "requested elevation in `DP`"},
					&cli.FloatFlag{Name: "radius", Aliases: []string{"r"}, Value: 4, Usage: "corner radius in `DP`"},
					&cli.FloatFlag{Name: "scale", Value: 1, Usage: "resample the output image by `FACTOR`"},
					&cli.StringFlag{Name: "state", Usage: "comma separated view `STATES` (pressed, focused, ...)"},
					&cli.BoolFlag{Name: "native", Usage: "pretend the host draws elevation itself"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "destination `FILE`, defaults to NAME.png"},
				},
				ArgsUsage: "RESOURCES NAME",
				CustomHelpTemplate: fmt.Sprintf(`%s
RESOURCES:
    resource directory with drawable/*.xml and optional values/colors.yaml

NAME:
    resource to use as background, "drawable/card" or "@color/surface",
    or a literal color such as "#FF2196F3"
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "probe",
				Usage:        "Prints how a background resolves",
				OnUsageError: usageErrorHandler,
				Action:       runProbe,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Value: "opacity", Usage: "resolution `QUERY` (name, alpha, opacity)"},
				},
				ArgsUsage: "RESOURCES NAME",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background(), os.Stderr), os.Interrupt, syscall.SIGTERM)

	app := newApp(os.Stdout)

	var err error
	// os.Exit is called at the end of main, no deferred functions after it
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
