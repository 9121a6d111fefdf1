package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/flag-arena/asset"
	"github.com/lixenwraith/flag-arena/audio"
	"github.com/lixenwraith/flag-arena/config"
	"github.com/lixenwraith/flag-arena/constants"
	"github.com/lixenwraith/flag-arena/country"
	"github.com/lixenwraith/flag-arena/engine"
	"github.com/lixenwraith/flag-arena/events"
	"github.com/lixenwraith/flag-arena/render"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	flags := config.NewFlagSet("flag-arena")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "flag-arena: %v\n", err)
		return 2
	}

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flag-arena: %v\n", err)
		return 1
	}

	if dump, _ := flags.GetBool("dump-config"); dump {
		if err := cfg.WriteTOML(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "flag-arena: %v\n", err)
			return 1
		}
		return 0
	}

	logger, logFile, err := setupLogging(cfg.Log, cfg.Headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flag-arena: %v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("fatal")
		fmt.Fprintf(os.Stderr, "flag-arena: %v\n", err)
		return 1
	}
	return 0
}

// run wires assets, the controller and sinks, then drives frames until done
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	resolver, err := loadResolver(cfg.Assets.CountriesFile, logger)
	if err != nil {
		return err
	}

	catalog, err := asset.Load(cfg.Assets.FlagsDir, cfg.Spawn.TargetSize)
	if err != nil {
		return fmt.Errorf("loading flags: %w", err)
	}
	logger.Info().Int("flags", len(catalog.Flags)).Str("dir", cfg.Assets.FlagsDir).Msg("flags loaded")

	templates := catalog.Templates(func(code string) string {
		return country.Label(resolver, code)
	})
	spawner := engine.NewTemplateSpawner(templates, cfg.SpawnArea())

	queue := events.NewEventQueue()
	router := events.NewRouter(queue)
	router.Register(events.NewLogHandler(logger))

	if cfg.Audio.Enabled && !cfg.Headless {
		sm := audio.NewSoundManager(logger, cfg.Audio.Volume)
		if err := sm.LoadClips(cfg.Assets.SoundsDir); err != nil {
			return fmt.Errorf("loading sounds: %w", err)
		}
		if err := sm.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			defer sm.Cleanup()
			router.Register(sm)
		}
	}

	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	dispatchDone := make(chan struct{})
	go func() {
		defer close(dispatchDone)
		router.Run(dispatchCtx, constants.AudioMonitorInterval)
	}()
	defer func() {
		cancelDispatch()
		<-dispatchDone
	}()

	opts := []engine.Option{engine.WithLogger(logger)}
	if seed := cfg.Spawn.Seed; seed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}

	ctrl, err := engine.NewController(cfg.Controller(), spawner, queue, opts...)
	if err != nil {
		return err
	}

	if cfg.Headless {
		completed, err := runHeadless(ctx, ctrl, cfg.Rounds, 1/float64(cfg.Arena.FPS))
		logger.Info().Int("rounds", completed).Msg("headless run finished")
		return err
	}
	return runInteractive(ctx, ctrl, catalog, cfg)
}

// loadResolver layers the optional override file over ISO names
// A missing override file is not an error
func loadResolver(path string, logger zerolog.Logger) (country.Resolver, error) {
	iso := country.NewISO()
	if path == "" {
		return iso, nil
	}

	overrides, err := country.LoadOverrides(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("path", path).Msg("no country override file")
		return iso, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading country names: %w", err)
	}
	logger.Debug().Int("entries", len(overrides)).Msg("country overrides loaded")
	return country.Chain{overrides, iso}, nil
}

// completedRounds counts rounds that ended, won or aborted
func completedRounds(ctrl *engine.Controller) int {
	return ctrl.Arena().Round - 1
}

// runHeadless ticks with a fixed dt and no pacing until enough rounds completed or ctx ends
func runHeadless(ctx context.Context, ctrl *engine.Controller, rounds int, dt float64) (int, error) {
	for {
		select {
		case <-ctx.Done():
			return completedRounds(ctrl), nil
		default:
		}

		if err := ctrl.Tick(dt); err != nil {
			return completedRounds(ctrl), err
		}
		if rounds > 0 && completedRounds(ctrl) >= rounds {
			return completedRounds(ctrl), nil
		}
	}
}

func runInteractive(ctx context.Context, ctrl *engine.Controller, catalog *asset.Catalog, cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	// Panic Recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mFLAG-ARENA CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.HideCursor()
	renderer := render.NewTerminalRenderer(screen, catalog, cfg.Arena.Width, cfg.Arena.Height)
	clock := engine.NewClock(engine.NewMonotonicTimeProvider(), cfg.Arena.FPS, cfg.Arena.MaxStep)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Input polling uses a raw goroutine as it interacts directly with the terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	renderer.Render(ctrl.Snapshot())
	for {
		dt, err := clock.Wait(loopCtx)
		if err != nil {
			return nil // quit key or signal
		}
		if err := ctrl.Tick(dt); err != nil {
			return err
		}
		renderer.Render(ctrl.Snapshot())

		if cfg.Rounds > 0 && completedRounds(ctrl) >= cfg.Rounds {
			return nil
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
