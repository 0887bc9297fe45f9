// cmd/tdsim/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-td-core/internal/app"
	"go-td-core/internal/component"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/entity"
	"go-td-core/internal/logging"
	"go-td-core/internal/metrics"
	"go-td-core/internal/state"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config (defaults to $"+config.ConfigEnv+")")
	contentPath := flag.String("content", "", "path to a YAML content file (defaults to the built-in content)")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	logLevel := flag.String("log-level", "", "override log level (debug, info, warn, error)")
	realtime := flag.Bool("realtime", false, "pace ticks with the wall clock instead of running flat out")
	flag.Parse()

	if err := run(*configPath, *contentPath, *metricsAddr, *logLevel, *realtime); err != nil {
		fmt.Fprintln(os.Stderr, "tdsim:", err)
		os.Exit(1)
	}
}

func run(configPath, contentPath, metricsAddr, logLevel string, realtime bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if contentPath != "" {
		cfg.Content.Path = contentPath
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Prefix: "tdsim", Timestamps: realtime})
	if err != nil {
		return err
	}

	content, err := loadContent(cfg.Content.Path)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	recorder, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if cfg.Metrics.Addr != "" {
		serveMetrics(cfg.Metrics.Addr, reg, logger)
	}

	game, err := app.NewGame(app.Options{Config: cfg, Content: content, Logger: logger, Metrics: recorder})
	if err != nil {
		return err
	}
	if err := game.PlaceInitialTowers(); err != nil {
		return err
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewPlayingState(sm, game, logger, cfg.Simulation.AutoStart, cfg.Simulation.MaxDuration))

	step := cfg.FixedStep()
	if realtime {
		ticker := time.NewTicker(time.Duration(step * float64(time.Second)))
		defer ticker.Stop()
		last := time.Now()
		for now := range ticker.C {
			sm.Update(now.Sub(last).Seconds())
			last = now
			if _, over := state.Over(sm); over {
				break
			}
		}
	} else {
		for {
			sm.Update(step)
			if _, over := state.Over(sm); over {
				break
			}
			if !cfg.Simulation.AutoStart && game.WaveStatus() == component.WavePending {
				// nobody will press start in a headless run
				break
			}
		}
	}

	printSummary(game, sm)
	return nil
}

func loadContent(path string) (*defs.Library, error) {
	if path == "" {
		return defs.LoadDefault()
	}
	return defs.LoadFile(path)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
}

func printSummary(game *app.Game, sm *state.StateMachine) {
	outcome := "stopped"
	if over, ok := state.Over(sm); ok {
		outcome = string(over.Outcome)
	}
	player := game.Player()
	fmt.Printf("run:         %s\n", game.RunID)
	fmt.Printf("outcome:     %s\n", outcome)
	fmt.Printf("wave:        %d/%d (%s)\n", game.CurrentWaveNumber(), game.WaveCount(), game.WaveStatus())
	fmt.Printf("sim time:    %.2fs over %d ticks\n", game.GameTime(), game.Ticks())
	fmt.Printf("base health: %d\n", player.BaseHealth)
	fmt.Printf("money:       %d\n", player.Money)
	for _, id := range entity.SortedIDs(game.ECS.Towers) {
		tower := game.ECS.Towers[id]
		level, _ := game.TowerLevel(id)
		exp, _ := game.TowerExperience(id)
		fmt.Printf("tower %-4d   %s level %d (%d xp)\n", id, tower.DefID, level, exp)
	}
}
