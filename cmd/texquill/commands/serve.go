package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/texquill/texquill/complete"
	"github.com/texquill/texquill/config"
	"github.com/texquill/texquill/document"
	"github.com/texquill/texquill/errors"
	"github.com/texquill/texquill/logger"
	"github.com/texquill/texquill/lsp"
	"github.com/texquill/texquill/server"
)

// ServeCmd starts the TexQuill language server
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TexQuill language server",
	Long: `Start the TexQuill language server.

By default the server speaks LSP over stdio, which is how most editors
launch it. With --websocket it listens for WebSocket connections instead
and exposes a /health endpoint.`,
	RunE: runServe,
}

var (
	serveWebSocket bool
	servePort      int
)

func init() {
	ServeCmd.Flags().BoolVar(&serveWebSocket, "websocket", false, "Serve LSP over WebSocket instead of stdio")
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "WebSocket port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	srv := buildServer(cfg)
	startConfigWatcher()

	if serveWebSocket {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		printStartupBanner(verbosity)

		port := servePort
		if port == 0 {
			port = cfg.GetServerPort()
		}
		return srv.Start(port)
	}

	return srv.RunStdio()
}

// buildServer assembles the completion stack from configuration
func buildServer(cfg *config.Config) *server.Server {
	logger.SetTheme(cfg.GetServerLogTheme())
	document.RegisterFileCommands(cfg.Complete.ExtraCommands)

	engine := complete.NewEngine(complete.OSProbe{}, logger.Named("complete"))
	service := lsp.NewService(engine, cfg.Paths.ProjectRoots, logger.Named("lsp"))
	if !cfg.AdvisoriesEnabled() {
		service.DisableAdvisories()
	}

	return server.NewServer(service, cfg)
}

// startConfigWatcher reloads command registrations and log theme when the
// user config changes on disk. Missing config file means nothing to watch.
func startConfigWatcher() {
	configPath := config.GetUserConfigPath()
	if configPath == "" {
		return
	}
	if _, err := os.Stat(configPath); err != nil {
		return
	}

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		logger.Warnw("Config watcher unavailable", "error", err)
		return
	}

	watcher.OnReload(func(cfg *config.Config) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger.SetTheme(cfg.GetServerLogTheme())
		document.RegisterFileCommands(cfg.Complete.ExtraCommands)
		return nil
	})

	watcher.Start()
	config.SetGlobalWatcher(watcher)
}
