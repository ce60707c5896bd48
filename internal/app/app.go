// Package app builds the application's object graph from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/vangoframework/vpmshell/internal/config"
	"github.com/vangoframework/vpmshell/internal/database"
	"github.com/vangoframework/vpmshell/internal/font"
	"github.com/vangoframework/vpmshell/internal/handlers"
	"github.com/vangoframework/vpmshell/internal/logbuf"
	"github.com/vangoframework/vpmshell/internal/metrics"
	"github.com/vangoframework/vpmshell/internal/packages"
	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/projects"
	"github.com/vangoframework/vpmshell/internal/repositories"
	"github.com/vangoframework/vpmshell/internal/server"
	"github.com/vangoframework/vpmshell/internal/shell"
	"github.com/vangoframework/vpmshell/internal/sidebar"
)

// App holds the wired application.
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Logs         *logbuf.Buffer
	Shell        *shell.Shell
	DB           *database.DB
	Projects     *projects.Store
	Repositories *repositories.Store
	Router       http.Handler
}

// fetchTimeout bounds repository and package downloads.
const fetchTimeout = 2 * time.Minute

// NewLogger returns the root logger: JSON in production, text otherwise,
// teed into buf.
func NewLogger(cfg *config.Config, out io.Writer, buf *logbuf.Buffer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(logbuf.NewHandler(h, buf)), nil
}

// NewShell builds the root layout from the shell settings.
func NewShell(cfg *config.Config) *shell.Shell {
	fontOpts := []font.Option{
		font.Subsets(cfg.FontSubsets...),
		font.Weights(cfg.FontWeights...),
		font.Display(cfg.FontDisplay),
	}
	if len(cfg.FontFallback) > 0 {
		fontOpts = append(fontOpts, font.Fallback(cfg.FontFallback...))
	}
	if cfg.FontLocal {
		fontOpts = append(fontOpts, font.Local())
	}

	return shell.New(
		shell.WithLang(cfg.Lang),
		shell.WithMetadata(shell.Metadata{Title: cfg.Title, Description: cfg.Description}),
		shell.WithFont(font.Resolve(cfg.FontFamily, fontOpts...)),
		shell.WithNav(func(class string) templ.Component {
			return sidebar.SideBar(sidebar.Class(class), sidebar.Brand(cfg.Title))
		}),
		shell.WithStylesheets("/static/globals.css"),
	)
}

// New wires every component. Close releases the database.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logs := logbuf.NewBuffer(cfg.LogBufferSize)
	logger, err := NewLogger(cfg, logOut, logs)
	if err != nil {
		return nil, err
	}

	prefsStore, err := prefs.NewStore(cfg.PrefsSecret, cfg.PrefsMaxAge, cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store, err := projects.NewStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	client := &http.Client{Timeout: fetchTimeout}
	repos, err := repositories.NewStore(ctx, db, repositories.WithHTTPClient(client))
	if err != nil {
		db.Close()
		return nil, err
	}
	installer := packages.NewInstaller(cfg.PackageCacheDir,
		packages.WithHTTPClient(client),
		packages.WithLogger(logger),
	)

	m := metrics.New()
	sh := NewShell(cfg)
	h := handlers.New(sh, store, repos, installer, prefsStore, logs, m, logger)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Logs:         logs,
		Shell:        sh,
		DB:           db,
		Projects:     store,
		Repositories: repos,
		Router: server.Router(server.Deps{
			Handlers: h,
			Prefs:    prefsStore,
			Metrics:  m,
			Logger:   logger,
		}),
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	return a.DB.Close()
}
