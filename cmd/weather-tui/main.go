package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/app"
	"github.com/ngmaloney/weather-mcp/internal/config"
	"github.com/ngmaloney/weather-mcp/internal/ui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file (optional)")
	envPath := flag.String("env", ".env", "Path to a .env file (optional)")
	logFile := flag.String("log", "", "Write logs to this file (logs are discarded otherwise)")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Printf("Error: configuration: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns the terminal
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := app.ConfigureLogging(cfg.Log, out); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	svc, err := app.NewService(context.Background(), cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	log.WithField("zipcode", svc.ZipcodeEnabled()).Info("starting weather-tui")

	p := tea.NewProgram(ui.NewModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
