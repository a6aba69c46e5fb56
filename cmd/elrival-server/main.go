package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/game"
	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/server"
)

var CLI struct {
	Config    string `short:"c" default:"elrival.hcl" help:"Path to HCL configuration file"`
	Addr      string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel  string `short:"l" help:"Log level (overrides config)"`
	PublicURL string `help:"Public URL encoded in the /join QR code (overrides config)"`
	Seed      int64  `help:"Question shuffle seed, 0 means time-based"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.PublicURL != "" {
		cfg.Server.PublicURL = CLI.PublicURL
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	addr := cfg.ListenAddress()
	if CLI.Addr != "" {
		addr = CLI.Addr
	}

	logger.Info("Starting El Rival Más Débil server",
		"addr", addr,
		"questions", len(cfg.Questions),
		"chain", cfg.Game.Chain)

	wsServer := server.NewServer(addr, cfg.Server.PublicURL, logger)
	session := game.NewSession(logger, quartz.NewReal(), wsServer, cfg.Rules(), cfg.Catalog(), rng)
	wsServer.SetSession(session)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(wsServer.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		return wsServer.Stop()
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", "error", err)
		kctx.Exit(1)
	}
}
