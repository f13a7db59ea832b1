package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/app"
	"github.com/ngmaloney/weather-mcp/internal/config"
	"github.com/ngmaloney/weather-mcp/internal/httpapi"
	"github.com/ngmaloney/weather-mcp/internal/tools"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file (optional)")
	envPath := flag.String("env", ".env", "Path to a .env file (optional)")
	transport := flag.String("transport", "", "Transport to serve: http or stdio (overrides config)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	provision := flag.Bool("provision", false, "Download the zipcode table if it is missing")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	buildInfo := GetBuildInfo()
	if *showVersion {
		fmt.Printf("weather-mcp %s (commit %s, built %s, %s, %s)\n",
			buildInfo.Version, buildInfo.GitCommit, buildInfo.BuildDate, buildInfo.GoVersion, buildInfo.Platform)
		return
	}

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration: %v\n", err)
		os.Exit(1)
	}
	if *transport != "" {
		cfg.Server.Transport = *transport
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *provision {
		cfg.Zipcode.Provision = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol in stdio mode, so logs always go to stderr
	if err := app.ConfigureLogging(cfg.Log, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(log.Fields{
		"version":   buildInfo.Version,
		"commit":    buildInfo.GitCommit,
		"transport": cfg.Server.Transport,
		"upstream":  cfg.NWS.BaseURL,
	}).Info("starting weather-mcp")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := app.NewService(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize weather service")
	}
	defer svc.Close()

	mcpServer := tools.NewServer(svc, buildInfo.Version, svc.ZipcodeEnabled())

	switch cfg.Server.Transport {
	case config.TransportStdio:
		if err := server.ServeStdio(mcpServer); err != nil {
			log.WithError(err).Error("stdio server stopped")
		}
	default:
		// Mode must be set before the engine is built
		httpapi.SetMode(os.Getenv("GIN_MODE"))
		runHTTP(ctx, cfg.Server.Addr, httpapi.NewRouter(svc, server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))))
	}
}

// runHTTP serves handler on addr until ctx is cancelled, then shuts down
// gracefully
func runHTTP(ctx context.Context, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen error")
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
		return
	}
	log.Info("server exited gracefully")
}
