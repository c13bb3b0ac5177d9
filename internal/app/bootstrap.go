package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rez/internal/auth"
	"rez/internal/config"
	"rez/internal/portal"
	"rez/internal/session"
	"rez/internal/token"
	"rez/internal/tools"
	"rez/internal/web"
	"rez/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// Config carries the command line settings into the bootstrap.
type Config struct {
	// Debug enables verbose logging across the application.
	Debug bool
	// ConfigPath is the directory holding config.yaml. Empty means
	// defaults plus environment overrides only.
	ConfigPath string
}

// Application wires the signer, the session store, the portal client,
// the browser-facing auth endpoints and the MCP tool server behind one
// listener.
type Application struct {
	cfg config.RezConfig

	blacklist *token.Blacklist
	sessions  *session.Store
	tools     *tools.Server

	httpServer *http.Server
}

// NewApplication loads and validates the configuration and constructs
// every component. The signing key is generated fresh on each start, so
// tokens do not survive a restart.
func NewApplication(appCfg Config) (*Application, error) {
	cfg, err := config.LoadConfig(appCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := logging.LevelInfo
	if appCfg.Debug {
		logLevel = logging.LevelDebug
	}

	// With the stdio transport stdout carries the MCP stream, so logs
	// must go to stderr.
	logOutput := os.Stdout
	if cfg.Server.Transport == config.TransportStdio {
		logOutput = os.Stderr
	}
	logging.Init(logLevel, logOutput)

	signer, err := token.NewSigner()
	if err != nil {
		return nil, fmt.Errorf("generating signing key: %w", err)
	}

	sweep := cfg.Auth.SweepInterval.AsDuration()
	blacklist := token.NewBlacklist(sweep)
	sessions := session.NewStore(cfg.Auth.SessionTTL.AsDuration(), sweep)

	portalClient := portal.NewClient(cfg.Upstream.BaseURL)

	toolServer := tools.NewServer(cfg, signer, sessions, portalClient, auth.NewGate(sessions))

	mux := http.NewServeMux()
	web.NewHandler(signer, blacklist, sessions, portalClient).RegisterRoutes(mux)
	if cfg.Server.Transport != config.TransportStdio {
		mux.Handle("/mcp", toolServer.StreamableHTTPHandler())
	}

	return &Application{
		cfg:       cfg,
		blacklist: blacklist,
		sessions:  sessions,
		tools:     toolServer,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: mux,
		},
	}, nil
}

// Run serves until the context is cancelled or a SIGINT/SIGTERM
// arrives, then shuts everything down.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("App", "Listening on %s (transport: %s)",
			a.httpServer.Addr, a.cfg.Server.Transport)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.cfg.Server.Transport == config.TransportStdio {
		g.Go(func() error {
			if err := a.tools.ServeStdio(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("App", "Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("App", err, "Error shutting down HTTP server")
		}

		a.sessions.Stop()
		a.blacklist.Stop()
		return nil
	})

	return g.Wait()
}
