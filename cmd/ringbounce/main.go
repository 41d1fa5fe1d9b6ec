// cmd/ringbounce/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-ringbounce/pkg/config"
	"github.com/opd-ai/go-ringbounce/pkg/driver"
	"github.com/opd-ai/go-ringbounce/pkg/engine"
	"github.com/opd-ai/go-ringbounce/pkg/event"
	"github.com/opd-ai/go-ringbounce/pkg/logging"
	"github.com/opd-ai/go-ringbounce/pkg/match"
	"github.com/opd-ai/go-ringbounce/pkg/render"
	engorender "github.com/opd-ai/go-ringbounce/pkg/render/engo"
)

// options are the command line settings. Pointers are nil for flags that
// were not given so they do not override the file or environment.
type options struct {
	configPath string
	variant    string
	renderer   *string
	ticks      *int
	seed       *uint64
	width      int
	height     int
	headless   bool
	logPath    string
	savePath   string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatalf("ringbounce: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("ringbounce", flag.ContinueOnError)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON configuration file")
	fs.StringVar(&opts.variant, "variant", "", "Variant preset: two-ball, single-ball or coliseum")
	renderer := fs.String("renderer", "", "Renderer: null, terminal or engo")
	ticks := fs.Int("ticks", 0, "Stop after this many ticks (0 runs until stopped)")
	seed := fs.Uint64("seed", 0, "Random seed (0 picks one)")
	fs.IntVar(&opts.width, "width", 0, "Window width (engo only)")
	fs.IntVar(&opts.height, "height", 0, "Window height (engo only)")
	fs.BoolVar(&opts.headless, "headless", false, "Tick as fast as possible (null renderer only)")
	fs.StringVar(&opts.logPath, "log", "", "Write logs to this file instead of stdout")
	fs.StringVar(&opts.savePath, "save", "", "Write the resolved configuration to this file and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			opts.renderer = renderer
		case "ticks":
			opts.ticks = ticks
		case "seed":
			opts.seed = seed
		}
	})
	return opts, nil
}

// resolveConfig builds the configuration from, in increasing precedence,
// the preset or file, the environment and the command line.
func resolveConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadConfig(opts.configPath)
	} else {
		variant := config.Variant(opts.variant)
		if variant == "" {
			variant = config.VariantFromEnv(config.VariantTwoBall)
		}
		cfg, err = config.Preset(variant)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if opts.renderer != nil {
		cfg.Runtime.Renderer = *opts.renderer
	}
	if opts.ticks != nil {
		cfg.Runtime.MaxTicks = *opts.ticks
	}
	if opts.seed != nil {
		cfg.Runtime.Seed = *opts.seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger picks the log destination. The terminal renderer owns the
// screen, so without a log file its logs are dropped.
func newLogger(opts options, renderer string) (*logging.Logger, func(), error) {
	level, ok := logging.ParseLevel(os.Getenv(logging.LevelEnv))
	if !ok {
		level = slog.LevelInfo
	}

	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return logging.NewLoggerTo(f, level), func() { f.Close() }, nil
	}

	var w io.Writer = os.Stdout
	if renderer == "terminal" {
		w = io.Discard
	}
	return logging.NewLoggerTo(w, level), func() {}, nil
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	if opts.savePath != "" {
		if err := config.SaveConfig(cfg, opts.savePath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "configuration written to %s\n", opts.savePath)
		return nil
	}

	logger, closeLog, err := newLogger(opts, cfg.Runtime.Renderer)
	if err != nil {
		return err
	}
	defer closeLog()

	bus := event.NewEventBus()
	world, err := engine.NewWorld(cfg, bus, logger)
	if err != nil {
		return err
	}

	var m *match.Match
	if cfg.Match.Enabled {
		m = match.New(logging.WithRunID(ctx, world.RunID()), cfg.Match, cfg.Runtime.TickRate, cfg.Bodies.Count, bus, world.Rand(), world, logger)
		defer m.Close()
	}

	if cfg.Runtime.Renderer == "engo" {
		scene := engorender.NewScene(world, m)
		engorender.Run(ctx, scene, engorender.Options{Width: opts.width, Height: opts.height})
		printSummary(stdout, world.CurrentTick(), world.Stats(), m)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		sink        driver.Sink
		closeScreen = func() {}
	)
	switch cfg.Runtime.Renderer {
	case "terminal":
		term, err := render.NewTerminalRenderer(cfg.World.Width, cfg.World.Height)
		if err != nil {
			return fmt.Errorf("starting terminal renderer: %w", err)
		}
		defer term.Close()
		closeScreen = func() { term.Close() }
		term.WatchInput(cancel)
		sink = driver.NewRendererSink("terminal", term, m)
	default:
		sink = driver.NewRendererSink("null", render.NewNullRenderer(logger), m)
	}

	runner := driver.NewRunner(world, m, logger, sink)
	runner.SetHeadless(opts.headless && cfg.Runtime.Renderer == "null")

	result, err := runner.Run(ctx)
	closeScreen()
	if err != nil {
		return err
	}
	if result.Dropped > 0 {
		logger.Warn(ctx, "frames were dropped", "dropped", result.Dropped)
	}
	printSummary(stdout, result.Ticks, result.Stats, m)
	return nil
}

func printSummary(w io.Writer, ticks uint64, stats engine.Stats, m *match.Match) {
	fmt.Fprintf(w, "ticks=%d rings_spawned=%d rings_destroyed=%d rings_expired=%d rings_pruned=%d incompatible_bounces=%d\n",
		ticks, stats.RingsSpawned, stats.RingsDestroyed, stats.RingsExpired, stats.RingsPruned, stats.IncompatibleBounces)
	if m == nil {
		return
	}
	if out, done := m.Outcome(); done {
		if out.Winner == match.NoWinner {
			fmt.Fprintf(w, "match over: %s\n", out.Decision)
		} else {
			fmt.Fprintf(w, "match over: side %d wins by %s, scores %v\n", out.Winner+1, out.Decision, out.Scores)
		}
	}
}
