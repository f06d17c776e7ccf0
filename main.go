// Command tilemerge runs the tile merge game.
//
// Commands:
//  1. "server" (default) runs the HTTP server exposing the REST API, WebSocket updates and an /mcp endpoint
//  2. "mcp" runs an MCP stdio server backed by an external or internal HTTP API
//  3. "play" plays in the terminal with a full-screen board
//  4. "console" plays line by line on stdin/stdout
//
// Flags (or the matching environment variables, also read from .env) control
// host/port, config directory, logging and optional ngrok tunneling.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/tilemerge/api"
	"github.com/wricardo/mcp-training/tilemerge/game/config"
	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/play"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
	"github.com/wricardo/mcp-training/tilemerge/game/session"
	"github.com/wricardo/mcp-training/tilemerge/transport/mcp"
	"github.com/wricardo/mcp-training/tilemerge/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Tile Merge Game Server"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("tilemerge failed")
	}
}

// newApp builds the command tree. Root flags apply to every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "tilemerge",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging (same as --log-level debug)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServerCommand,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServerCommand,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server, starting an internal HTTP API if none is reachable",
				Action:  runStdioMCPCommand,
			},
			{
				Name:  "play",
				Usage: "Play in the terminal (arrows or WASD, q to quit)",
				Flags: []cli.Flag{configFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					// the screen owns the terminal, keep log lines off it
					zerolog.SetGlobalLevel(zerolog.Disabled)

					cfg, err := loadPlayConfig(cmd.String("config-dir"), cmd.String("config"))
					if err != nil {
						return err
					}
					screen, err := tcell.NewScreen()
					if err != nil {
						return fmt.Errorf("failed to create screen: %w", err)
					}
					if err := screen.Init(); err != nil {
						return fmt.Errorf("failed to initialize screen: %w", err)
					}
					defer screen.Fini()

					return play.RunTUI(screen, cfg)
				},
			},
			{
				Name:  "console",
				Usage: "Play line by line on stdin/stdout",
				Flags: []cli.Flag{configFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					setupLogging(os.Stderr, cmd.Bool("debug"), cmd.String("log-level"))

					cfg, err := loadPlayConfig(cmd.String("config-dir"), cmd.String("config"))
					if err != nil {
						return err
					}
					err = play.RunConsole(ctx, os.Stdin, os.Stdout, cfg)
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				},
			},
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "Configuration to play with (defaults to classic)",
	}
}

// setupLogging configures the global zerolog logger. Logs always go to w,
// never stdout, which the stdio MCP transport owns.
func setupLogging(w io.Writer, debug bool, level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// loadPlayConfig resolves the configuration for local play. Without a config
// name a missing directory falls back to the built-in configuration.
func loadPlayConfig(configDir, name string) (*engine.GameConfig, error) {
	manager, err := config.NewManager(configDir)
	if err != nil {
		if name != "" {
			return nil, err
		}
		return engine.DefaultGameConfig(), nil
	}
	if name == "" {
		return manager.GetDefault(), nil
	}
	return manager.LoadConfig(name)
}

// initializeServices wires the session and config managers into the game service.
func initializeServices(configDir string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	return service.NewGameService(sessionManager, configManager), sessionManager, nil
}

// sessionCleanupRoutine removes sessions idle for longer than maxAge until ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
			}
		}
	}
}

func runServerCommand(ctx context.Context, cmd *cli.Command) error {
	setupLogging(os.Stderr, cmd.Bool("debug"), cmd.String("log-level"))
	log.Info().Str("version", Version).Str("mode", "server").Msg("starting " + AppName)

	gameService, sessions, err := initializeServices(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	opts := ngrokOptions{
		enabled: cmd.Bool("ngrok"),
		token:   cmd.String("ngrok-auth"),
		domain:  cmd.String("ngrok-domain"),
	}
	return runHTTPServer(ctx, gameService, sessions, addr, opts)
}

type ngrokOptions struct {
	enabled bool
	token   string
	domain  string
}

// newHandler builds the API server with the /mcp endpoint mounted on it.
func newHandler(gameService service.GameService, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(gameService, hub)
	apiServer.Mount("/mcp", mcp.NewClient(baseURL))
	return apiServer
}

// runHTTPServer serves the REST API, WebSocket hub and /mcp endpoint until ctx
// is cancelled. With ngrok enabled the same handler is also served through a
// public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService, sessions *session.Manager, addr string, ngrokOpts ngrokOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)
	go sessionCleanupRoutine(ctx, sessions, sessionCleanupInterval, sessionMaxAge)

	handler := newHandler(gameService, hub, "http://"+addr)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serverErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("api", fmt.Sprintf("http://%s/api", addr)).
			Str("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)).
			Str("mcp", fmt.Sprintf("http://%s/mcp", addr)).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if ngrokOpts.enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler, ngrokOpts)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case runErr = <-serverErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
	return runErr
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done.
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts ngrokOptions) {
	if opts.token == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if opts.domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	log.Info().Str("domain", opts.domain).Msg("starting ngrok tunnel")
	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.token))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Info().
		Str("url", ngrokURL).
		Str("api", ngrokURL+"/api").
		Str("mcp", ngrokURL+"/mcp").
		Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// apiAvailable reports whether a tile merge API answers health checks at baseURL.
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the API on a random loopback port and returns its base URL.
func startInternalAPI(ctx context.Context, gameService service.GameService) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("internal HTTP server error")
		}
	}()
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	return "http://" + listener.Addr().String(), nil
}

// runStdioMCPCommand reuses an API already running on host:port, or starts an
// internal one, and serves MCP over stdio.
func runStdioMCPCommand(ctx context.Context, cmd *cli.Command) error {
	setupLogging(os.Stderr, cmd.Bool("debug"), cmd.String("log-level"))
	log.Info().Str("version", Version).Str("mode", "mcp").Msg("starting " + AppName)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	baseURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
	if apiAvailable(ctx, baseURL) {
		log.Info().Str("url", baseURL).Msg("using external API server for MCP")
	} else {
		gameService, sessions, err := initializeServices(cmd.String("config-dir"))
		if err != nil {
			return err
		}
		go sessionCleanupRoutine(ctx, sessions, sessionCleanupInterval, sessionMaxAge)

		baseURL, err = startInternalAPI(ctx, gameService)
		if err != nil {
			return err
		}
		log.Info().Str("url", baseURL).Msg("started internal API server for MCP")
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Msg("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
