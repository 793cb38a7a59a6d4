// Package web serves the browser front-end: a single page with a
// one-shot ask form and a per-browser conversation, backed by the same
// core the CLI uses. Responses render as HTML server-side, the core
// only ever hands over plain strings.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/hunyport/huny/internal/gradio"
	"github.com/hunyport/huny/internal/models"
	"github.com/hunyport/huny/internal/session"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config is the serve-mode configuration surface.
type Config struct {
	Port          int
	DefaultTarget string
	API           string
}

// Server implements models.Command, running until the context is
// cancelled.
type Server struct {
	conf  Config
	log   zerolog.Logger
	store *sessionStore
	tmpl  *template.Template
}

// New builds the web server. A nil dialer connects over gradio with
// the configured remote procedure name; tests inject their own.
func New(conf Config, dial session.Dialer) (*Server, error) {
	if dial == nil {
		dial = func(ctx context.Context, target string) (models.Predictor, error) {
			return gradio.Connect(ctx, target, gradio.WithAPI(conf.API))
		}
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	level := zerolog.InfoLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "huny").
		Str("component", "web").
		Logger()
	return &Server{
		conf:  conf,
		log:   logger,
		store: newSessionStore(dial),
		tmpl:  tmpl,
	}, nil
}

// Routes wires the http surface. POST routes are rate limited per IP,
// the model behind them is a scarce resource.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(30, time.Minute))
		r.Post("/ask", s.handleAsk)
		r.Post("/chat", s.handleChat)
		r.Post("/chat/clear", s.handleChatClear)
	})
	return r
}

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", s.conf.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		s.log.Info().Int("port", s.conf.Port).Msg("listening")
		errChan <- srv.ListenAndServe()
	}()
	select {
	case err := <-errChan:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t0 := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(t0)).
			Msg("request")
	})
}
