// Package server serves the dosing form over HTTP: an HTML form for browsers
// and the mobile shell, and a JSON API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/tdsdose/internal/config"
	"github.com/rshade/tdsdose/internal/dosing"
)

//go:embed templates/*.html
var templateFS embed.FS

// Timeouts for the HTTP server.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Variant  dosing.Variant
	Defaults map[string]string
	App      config.AppConfig
	Logger   zerolog.Logger
}

// Server is the HTTP surface of the dosing form.
type Server struct {
	opts   Options
	engine *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Variant == "" {
		opts.Variant = dosing.DefaultVariant
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"isChemical": func(g dosing.Group) bool { return g == dosing.GroupChemical },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{opts: opts}
	s.engine = SetupRouter(s, tmpl)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info().Str("addr", addr).Msg("dosing server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.opts.Logger.Info().Msg("dosing server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// newForm mounts a fresh form with the configured defaults.
func (s *Server) newForm() *dosing.Form {
	form, _ := dosing.NewFormWithDefaults(s.opts.Variant, s.opts.Defaults)
	return form
}

// webDirExists reports whether the configured static asset directory exists.
func (s *Server) webDirExists() bool {
	if s.opts.App.WebDir == "" {
		return false
	}
	info, err := os.Stat(s.opts.App.WebDir)
	return err == nil && info.IsDir()
}
