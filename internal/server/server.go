package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/glasspane/shellhost/internal/api/http"
	"github.com/glasspane/shellhost/internal/api/middleware"
	"github.com/glasspane/shellhost/internal/api/ws"
	"github.com/glasspane/shellhost/internal/command"
	"github.com/glasspane/shellhost/internal/infrastructure/config"
	"github.com/glasspane/shellhost/internal/infrastructure/logging"
	"github.com/glasspane/shellhost/internal/infrastructure/monitoring"
	layoutProvider "github.com/glasspane/shellhost/internal/providers/layout"
	openerProvider "github.com/glasspane/shellhost/internal/providers/opener"
	shellProvider "github.com/glasspane/shellhost/internal/providers/shell"
	updaterProvider "github.com/glasspane/shellhost/internal/providers/updater"
	windowProvider "github.com/glasspane/shellhost/internal/providers/window"
	"github.com/glasspane/shellhost/internal/session"
	"github.com/glasspane/shellhost/internal/shared/types"
	"github.com/glasspane/shellhost/internal/window"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *command.Registry
	windows  *window.Manager
	sessions *session.Manager
	logger   *logging.Logger
	config   *config.Config
	shell    *config.ShellConfig
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, shell *config.ShellConfig) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing shell host",
		zap.String("app", shell.App.Name),
		zap.String("version", shell.App.Version),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Initialize window manager and create the main window
	windows := window.NewManager().WithMetrics(metrics)
	if _, err := windows.Create(windowOptions(shell)); err != nil {
		return nil, fmt.Errorf("failed to create main window: %w", err)
	}
	logger.Info("Main window created",
		zap.String("label", shell.Window.Label),
		zap.Uint32("width", shell.Window.Width),
		zap.Uint32("height", shell.Window.Height),
	)

	// Initialize session manager with on-disk layout storage
	sessions, err := session.NewManager(windows, cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize layout storage: %w", err)
	}

	// Register command providers
	registry := command.NewRegistry().WithMetrics(metrics)
	registerProviders(registry, windows, sessions, cfg, shell, logger)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := apihttp.NewHandlers(registry, windows, sessions, shell)
	wsHandler := ws.NewHandler(registry, windows, metrics, logger)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Command dispatch
	router.GET("/commands", handlers.ListCommands)
	router.POST("/invoke", handlers.Invoke)

	// Window management
	router.GET("/windows", handlers.ListWindows)
	router.GET("/windows/:label", handlers.GetWindow)
	router.POST("/windows/:label/focus", handlers.FocusWindow)
	router.DELETE("/windows/:label", handlers.CloseWindow)

	// Layout endpoints
	router.POST("/layouts/save", handlers.SaveLayout)
	router.GET("/layouts", handlers.ListLayouts)
	router.GET("/layouts/:id", handlers.GetLayout)
	router.POST("/layouts/:id/restore", handlers.RestoreLayout)
	router.DELETE("/layouts/:id", handlers.DeleteLayout)

	// WebSocket IPC
	router.GET("/ipc", wsHandler.HandleConnection)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Shell host initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		windows:  windows,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
		shell:    shell,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down shell host...")

	// Persist the current layout so the next launch restores it
	if _, err := s.sessions.Replace("last-session", "Saved at shutdown"); err != nil {
		s.logger.Warn("Failed to save shutdown layout", zap.Error(err))
	}

	s.logger.Sync()
	return nil
}

// windowOptions maps the shell definition to window creation options
func windowOptions(shell *config.ShellConfig) window.Options {
	opts := window.Options{
		Label:      shell.Window.Label,
		Title:      shell.Window.Title,
		Width:      shell.Window.Width,
		Height:     shell.Window.Height,
		X:          shell.Window.X,
		Y:          shell.Window.Y,
		Resizable:  shell.Window.IsResizable(),
		Visible:    shell.Window.IsVisible(),
		Fullscreen: shell.Window.Fullscreen,
	}
	if shell.Window.MinWidth > 0 || shell.Window.MinHeight > 0 {
		opts.MinSize = &types.Size{Width: shell.Window.MinWidth, Height: shell.Window.MinHeight}
	}
	if shell.Window.MaxWidth > 0 || shell.Window.MaxHeight > 0 {
		opts.MaxSize = &types.Size{Width: shell.Window.MaxWidth, Height: shell.Window.MaxHeight}
	}
	return opts
}

func registerProviders(
	registry *command.Registry,
	windows *window.Manager,
	sessions *session.Manager,
	cfg *config.Config,
	shell *config.ShellConfig,
	logger *logging.Logger,
) {
	providers := []command.Provider{
		shellProvider.NewProvider(),
		windowProvider.NewProvider(windows),
		openerProvider.NewProvider(),
		updaterProvider.NewProvider(cfg.Updater.Endpoint, shell.App.Version),
		layoutProvider.NewProvider(sessions),
	}

	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			logger.Warn("Failed to register provider",
				zap.String("provider", p.Definition().ID),
				zap.Error(err),
			)
		}
	}

	stats := registry.Stats()
	logger.Info("Command providers registered",
		zap.Any("providers", stats["total_providers"]),
		zap.Any("commands", stats["total_commands"]),
	)
}
