package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-lumistrip/internal/app"
	"github.com/coreman2200/funtimes-lumistrip/internal/config"
	"github.com/coreman2200/funtimes-lumistrip/internal/control"
	"github.com/coreman2200/funtimes-lumistrip/internal/driver"
	"github.com/coreman2200/funtimes-lumistrip/internal/input"
	"github.com/coreman2200/funtimes-lumistrip/internal/ws"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		drv        = flag.String("driver", "", "driver: spi | sim (overrides config)")
		numLeds    = flag.Int("leds", 0, "strip length (overrides config)")
		monitor    = flag.String("monitor", "", "websocket monitor listen address (overrides config)")
		simOnly    = flag.Bool("sim-only", false, "force console output, no hardware")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// ---- Config (optional; flags override) ----
	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *drv != "" {
		cfg.Driver = *drv
	}
	if *numLeds > 0 {
		cfg.NumLeds = *numLeds
	}
	if *monitor != "" {
		cfg.Monitor = *monitor
	}
	if *simOnly {
		cfg.Driver = "sim"
	}

	codes := control.DefaultCodes()
	if len(cfg.Codes) > 0 {
		t, err := control.ParseCodes(cfg.Codes)
		if err != nil {
			log.Fatal().Err(err).Msg("bad ir_codes table")
		}
		codes = t
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("host init failed")
	}

	// ---- Output driver ----
	var out driver.Driver
	if cfg.Driver == "spi" {
		d, err := driver.Open(cfg.SPIPort, cfg.NumLeds)
		if err != nil {
			log.Warn().Err(err).Msg("no SPI port, falling back to console output")
			out = driver.NewSim(cfg.NumLeds)
		} else {
			out = d
		}
	} else {
		out = driver.NewSim(cfg.NumLeds)
	}

	// ---- Inputs (absent hardware degrades to no-ops) ----
	var btn input.ButtonSource = input.NoButton{}
	if cfg.ButtonPin != "" {
		if b, err := input.OpenButton(cfg.ButtonPin); err != nil {
			log.Warn().Err(err).Str("pin", cfg.ButtonPin).Msg("button unavailable")
		} else {
			btn = b
		}
	}
	var ir input.CodeSource = input.NoReceiver{}
	if cfg.IRPin != "" {
		if r, err := input.OpenReceiver(cfg.IRPin); err != nil {
			log.Warn().Err(err).Str("pin", cfg.IRPin).Msg("IR receiver unavailable")
		} else {
			ir = r
			defer r.Close()
		}
	}

	// ---- Optional frame monitor ----
	var mon *ws.Monitor
	if cfg.Monitor != "" {
		mon = ws.NewMonitor(log.Logger)
		mux := http.NewServeMux()
		mux.Handle("/ws", mon.Handler())
		go func() {
			log.Info().Str("addr", cfg.Monitor).Msg("frame monitor listening")
			if err := http.ListenAndServe(cfg.Monitor, mux); err != nil {
				log.Warn().Err(err).Msg("frame monitor stopped")
			}
		}()
	}

	ctrl := app.New(app.Options{
		NumLeds: cfg.NumLeds,
		Tick:    cfg.Tick(),
		Codes:   codes,
		Driver:  out,
		Button:  btn,
		IR:      ir,
		Monitor: mon,
		Log:     log.Logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		log.Info().Stringer("signal", s).Msg("shutting down")
		cancel()
	}()

	if err := ctrl.Run(ctx); err != nil {
		log.Warn().Err(err).Msg("controller stopped")
	}
}
