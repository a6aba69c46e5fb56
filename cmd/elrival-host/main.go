package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

var CLI struct {
	Server   string `short:"s" default:"ws://localhost:3000/ws" help:"Server websocket URL"`
	LogFile  string `default:"elrival-host.log" help:"Log file path"`
	LogLevel string `short:"l" default:"info" help:"Log level"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logFile, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		kctx.Exit(1)
	}
	defer func() { _ = logFile.Close() }()

	logger := log.New(logFile)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	logger.Info("Starting host console", "server", CLI.Server)

	conn, _, err := websocket.DefaultDialer.Dial(CLI.Server, nil)
	if err != nil {
		fmt.Printf("Failed to connect to server: %v\n", err)
		kctx.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	model := newHostModel(conn, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go model.readLoop(program)

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running host console: %v\n", err)
		kctx.Exit(1)
	}
}
