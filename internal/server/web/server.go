// Package web serves the file share page: the download form for everybody,
// the upload form for signed-in users, and the sign-in/sign-out redirects to
// the identity provider.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/s3share/internal/config"
	"github.com/dmitrijs2005/s3share/internal/identity"
	"github.com/dmitrijs2005/s3share/internal/logging"
	"github.com/dmitrijs2005/s3share/internal/metrics"
	"github.com/dmitrijs2005/s3share/internal/share"
)

//go:embed templates/*.html
var templateFS embed.FS

const sweepInterval = time.Minute

type Server struct {
	address        string
	logger         logging.Logger
	share          *share.Service
	provider       identity.Provider
	sessions       *SessionStore
	metrics        *metrics.Metrics
	templates      *template.Template
	cookieName     string
	secureCookies  bool
	sessionTTL     time.Duration
	maxUploadBytes int64
	now            func() time.Time
}

func NewServer(c *config.Config, l logging.Logger, svc *share.Service, p identity.Provider, m *metrics.Metrics) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		address:        c.ListenAddr,
		logger:         l.With("module", "web_server"),
		share:          svc,
		provider:       p,
		sessions:       NewSessionStore(m),
		metrics:        m,
		templates:      tmpl,
		cookieName:     c.SessionCookieName,
		secureCookies:  strings.HasPrefix(c.CognitoRedirectURI, "https://"),
		sessionTTL:     c.SessionTTL,
		maxUploadBytes: c.MaxUploadBytes,
		now:            time.Now,
	}, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, s.loggingMiddleware)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/download", s.handleDownload).Methods(http.MethodPost)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/signin", s.handleSignIn).Methods(http.MethodGet)
	r.HandleFunc("/callback", s.handleCallback).Methods(http.MethodGet)
	r.HandleFunc("/signout", s.handleSignOut).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepSessions(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweepSessions(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.sessions.Sweep(); n > 0 {
				s.logger.Debug(ctx, "expired sessions removed", "count", n)
			}
		}
	}
}
