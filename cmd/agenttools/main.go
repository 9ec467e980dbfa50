// agenttools — a collection of agent tools behind one invocation
// contract, served over HTTP or MCP stdio.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwozniczak/agenttools/internal/api"
	"github.com/mwozniczak/agenttools/internal/domain/audit"
	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/config"
	"github.com/mwozniczak/agenttools/internal/infra/eventbus"
	"github.com/mwozniczak/agenttools/internal/infra/geocode"
	"github.com/mwozniczak/agenttools/internal/infra/httpcache"
	"github.com/mwozniczak/agenttools/internal/infra/sqlite"
	"github.com/mwozniczak/agenttools/internal/mcpserver"
	"github.com/mwozniczak/agenttools/internal/server"
	"github.com/mwozniczak/agenttools/internal/tools"
	"github.com/mwozniczak/agenttools/internal/version"
	pkgauth "github.com/mwozniczak/agenttools/pkg/auth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("agenttools", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}
	if *showHelp {
		printHelp(out)
		return 0
	}

	command := "serve"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}

	switch command {
	case "version":
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	case "serve":
		return serve(false)
	case "mcp":
		return serve(true)
	default:
		fmt.Fprintf(out, "unknown command: %s\n\n", command) //nolint:errcheck
		printHelp(out)
		return 2
	}
}

// serve wires the shared runtime and runs either the HTTP API or the
// MCP stdio server until interrupted.
func serve(mcpMode bool) int {
	log := newLogger(mcpMode)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return 1
	}

	bus := eventbus.New()
	registry := tool.NewRegistry(log, bus)

	if err := tools.RegisterAll(registry, tools.Deps{
		Cache:         httpcache.New(cfg.CacheDir, cfg.CacheTTL),
		Geocoder:      geocode.NewClient(),
		BraveInterval: cfg.BraveInterval,
	}); err != nil {
		log.Error().Err(err).Msg("failed to register tools")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var recorder *audit.Recorder
	var db *sql.DB
	if cfg.AuditDBPath != "" {
		db, err = sqlite.NewDB(cfg.AuditDBPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to open audit database")
			return 1
		}
		defer db.Close() //nolint:errcheck
		if err := sqlite.MigrateUp(db); err != nil {
			log.Error().Err(err).Msg("failed to migrate audit database")
			return 1
		}
		recorder = audit.NewRecorder(db, log)
		go recorder.Start(ctx, bus)
	}

	if mcpMode {
		if err := mcpserver.New(registry, log).Run(ctx); err != nil {
			log.Error().Err(err).Msg("MCP server failed")
			return 1
		}
		return 0
	}

	var authenticator *pkgauth.Authenticator
	if cfg.JWTSecret != "" {
		authenticator = pkgauth.NewAuthenticator(cfg.JWTSecret, 0)
	}

	srv := server.New(server.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, api.Deps{
		Registry:      registry,
		Recorder:      recorder,
		Authenticator: authenticator,
		APIKeyHash:    cfg.APIKeyHash,
		Log:           log,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
			return 1
		}
	}
	return 0
}

// newLogger builds the process logger. In MCP mode stdout carries the
// protocol, so logs go to stderr.
func newLogger(mcpMode bool) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if !mcpMode {
		w.Out = os.Stdout
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func printHelp(out io.Writer) {
	helpText := `agenttools - agent tool collection

Usage:
  agenttools [options] [command]

Options:
  --version    Show version information
  --help       Show this help message

Commands:
  serve        Start the HTTP API server (default)
  mcp          Serve tools over MCP on stdio
  version      Show version information

Examples:
  agenttools --version
  agenttools serve
  agenttools mcp`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
