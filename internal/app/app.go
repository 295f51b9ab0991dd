package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/library"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/remote"
	"github.com/five82/folio/internal/ui"
)

// Options configure a folio run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/folio/prefs.toml
	APIURL     string // overrides api_url from the config file
}

// Env is the wired object graph shared by the TUI and the CLI commands.
type Env struct {
	Config     config.Config
	Client     *remote.Client
	Controller *library.Controller
	Logger     *slog.Logger
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	return cfg, nil
}

// NewEnv builds the remote client and the controller for cfg.
func NewEnv(cfg config.Config, logger *slog.Logger) (*Env, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := remote.NewClient(cfg.APIURL,
		remote.WithTimeout(cfg.RequestTimeout),
		remote.WithLogger(logger.With("component", "remote")),
	)
	if err != nil {
		return nil, fmt.Errorf("init books client: %w", err)
	}
	ctrl := library.New(client, library.Options{
		Logger:        logger.With("component", "library"),
		GuardInFlight: cfg.GuardInFlight,
		StrictPrice:   cfg.StrictPrice,
	})
	return &Env{Config: cfg, Client: client, Controller: ctrl, Logger: logger}, nil
}

// NewLogger returns a text slog logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenLog creates the log file's directory and opens it for appending
// through bubbletea, which also points the standard logger at it.
func OpenLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "folio")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Run boots the folio TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := OpenLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger := NewLogger(logFile, cfg.LogLevel)
	slog.SetDefault(logger)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", "error", err)
	}

	env, err := NewEnv(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("folio starting", "api", env.Client.BaseURL(), "log_level", cfg.LogLevel.String())

	return ui.Run(ctx, ui.Options{
		Controller: env.Controller,
		Logger:     logger.With("component", "ui"),
		APIURL:     env.Client.BaseURL(),
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})
}
