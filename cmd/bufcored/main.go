// Command bufcored is a demo composition root: it wires a driver.Driver
// to the in-memory engine/host fakes, replays the six end-to-end
// scenarios from the reducer's scenario tests, and logs the resulting
// adapter state and counters — the only way to exercise the module as a
// program rather than as a library.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fluxwatch/bufcore/internal/adapter/memory"
	"github.com/fluxwatch/bufcore/internal/config"
	"github.com/fluxwatch/bufcore/internal/config/loader"
	"github.com/fluxwatch/bufcore/internal/config/watcher"
	"github.com/fluxwatch/bufcore/internal/corelog"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/driver"
	"github.com/fluxwatch/bufcore/internal/position"
	"github.com/fluxwatch/bufcore/internal/selection"
)

// configReloadDebounce bounds how long the file watcher waits for a burst
// of writes to settle before applying a reloaded config.
const configReloadDebounce = 300 * time.Millisecond

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	ConfigPath string
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loader.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	log := corelog.New(corelog.Config{
		Level:  corelog.ParseLevel(cfg.LogLevel),
		Output: os.Stderr,
		Prefix: "bufcored",
	})

	if cfg.EngineTarget != "" || cfg.HostTarget != "" {
		log.Info("configured transport targets engine=%q host=%q (demo scenarios still use the in-memory adapters)", cfg.EngineTarget, cfg.HostTarget)
	}

	live := newLiveConfig(cfg)

	if opts.ConfigPath != "" {
		w, err := watcher.New(opts.ConfigPath, configReloadDebounce, func() {
			reloaded, err := loader.Load(opts.ConfigPath)
			if err != nil {
				log.Warn("config reload failed, keeping previous configuration: %v", err)
				return
			}
			if opts.LogLevel != "" {
				reloaded.LogLevel = opts.LogLevel
			}
			live.set(reloaded)
			log.SetLevel(corelog.ParseLevel(reloaded.LogLevel))
			log.Info("reloaded configuration from %s", opts.ConfigPath)
		})
		if err != nil {
			log.Warn("config file watching disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-signals:
			log.Info("received shutdown signal")
			close(done)
		case <-done:
		}
	}()

	runScenarios(log, live)
	close(done)

	log.Info("all scenarios replayed, exiting")
	return 0
}

// liveConfig holds the most recently loaded config.Config, updated by
// the file watcher's reload callback and read by each scenario before it
// builds a fresh driver.Driver.
type liveConfig struct {
	mu  sync.Mutex
	cfg config.Config
}

func newLiveConfig(cfg config.Config) *liveConfig {
	return &liveConfig{cfg: cfg}
}

func (lc *liveConfig) get() config.Config {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.cfg
}

func (lc *liveConfig) set(cfg config.Config) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.cfg = cfg
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a bufcore.toml configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bufcored - buffer synchronization core demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: bufcored [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("bufcored %s (%s)\n", version, commit)
		os.Exit(0)
	}

	return opts
}

// scenario replays one named end-to-end situation against a fresh driver
// and logs the state its adapters ended up in.
type scenario struct {
	name string
	run  func(ctx context.Context, log *corelog.Logger, live *liveConfig)
}

func runScenarios(log *corelog.Logger, live *liveConfig) {
	for _, s := range scenarios() {
		sl := log.WithField("scenario", s.name)
		sl.Info("starting")
		s.run(context.Background(), sl, live)
		sl.Info("done")
	}
}

func scenarios() []scenario {
	return []scenario{
		{"engine moves cursor", scenarioEngineMovesCursor},
		{"host types a character", scenarioHostTypesCharacter},
		{"token timeout while shadows equal", scenarioTokenTimeoutShadowsEqual},
		{"refresh rejected while busy", scenarioRefreshRejectedWhileBusy},
		{"mouse drag selection creates visual", scenarioMouseDragCreatesVisual},
		{"passthrough toggle", scenarioPassthroughToggle},
	}
}

func newHarness(lines []string, log *corelog.Logger, live *liveConfig) (*driver.Driver, *memory.Engine, *memory.Host, *memory.Clock, *memory.Recorder) {
	e := memory.NewEngine(lines)
	h := memory.NewHost(lines)
	c := memory.NewClock()
	r := memory.NewRecorder()
	d := driver.New(lines, e, h, c, r, log, live.get())
	return d, e, h, c, r
}

func logState(log *corelog.Logger, d *driver.Driver, e *memory.Engine, h *memory.Host, r *memory.Recorder) {
	start, end, _ := h.SelectedRange(context.Background())
	snap := d.Telemetry().Snapshot()
	log.Info("engine lines=%v host lines=%v host selection=[%d,%d) bells=%d alerts=%d acquisitions(engine=%d,host=%d)",
		e.Lines(), h.Lines(), start, end, r.Bells(), len(r.Alerts()), snap.EngineAcquisitions, snap.HostAcquisitions)
}

func scenarioEngineMovesCursor(_ context.Context, log *corelog.Logger, live *liveConfig) {
	lines := []string{"abc", "def"}
	d, e, h, _, r := newHarness(lines, log, live)
	d.Start()
	defer d.Stop()

	e.NotifyCursor("normal", position.Engine{Line: 2, Column: 2}, position.Engine{Line: 2, Column: 2})
	e.NotifyFlush()
	d.Sync()

	logState(log, d, e, h, r)
}

func scenarioHostTypesCharacter(_ context.Context, log *corelog.Logger, live *liveConfig) {
	lines := []string{"abc", "def"}
	d, e, h, _, r := newHarness(lines, log, live)
	d.Start()
	defer d.Stop()

	h.TypeAt(1, "X")
	d.Sync()

	logState(log, d, e, h, r)
}

func scenarioTokenTimeoutShadowsEqual(_ context.Context, log *corelog.Logger, live *liveConfig) {
	lines := []string{"abc", "def"}
	d, e, h, c, r := newHarness(lines, log, live)
	d.Start()
	defer d.Stop()

	e.NotifyCursor("normal", position.Engine{Line: 2, Column: 2}, position.Engine{Line: 2, Column: 2})
	e.NotifyFlush()
	d.Sync()

	c.Fire(coreevent.TokenTimer)
	d.Sync()

	logState(log, d, e, h, r)
}

func scenarioRefreshRejectedWhileBusy(_ context.Context, log *corelog.Logger, live *liveConfig) {
	lines := []string{"abc", "def"}
	d, e, h, _, r := newHarness(lines, log, live)
	d.Start()
	defer d.Stop()

	h.TypeAt(1, "X")
	d.Sync()

	d.RequestRefresh(corestate.OwnerHost)
	d.Sync()

	logState(log, d, e, h, r)
}

func scenarioMouseDragCreatesVisual(_ context.Context, log *corelog.Logger, live *liveConfig) {
	lines := []string{"abc", "def"}
	d, e, h, _, r := newHarness(lines, log, live)
	d.Start()
	defer d.Stop()

	origin := selection.Collapsed(position.Host{Line: 0, Column: 0})
	d.SubmitMouse(coreevent.MouseDownLeft, origin, true)
	d.Sync()

	h.SetSelection(0, 6)
	d.Sync()

	d.SubmitMouse(coreevent.MouseUpLeft, origin, true)
	d.Sync()

	logState(log, d, e, h, r)
}

func scenarioPassthroughToggle(_ context.Context, log *corelog.Logger, live *liveConfig) {
	lines := []string{"abc", "def"}
	d, e, h, _, r := newHarness(lines, log, live)
	h.SetSelection(5, 6)
	d.Start()
	defer d.Stop()

	d.SetPassthrough(true)
	d.Sync()

	logState(log, d, e, h, r)
}
