package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/jakoblorz/go-projectpage/internal/models"
	"github.com/jakoblorz/go-projectpage/internal/site"
)

const requestIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Server serves one page per project of the configured organization.
type Server struct {
	builder *site.Builder
	org     string
	ref     string
	logger  *log.Logger
}

func New(builder *site.Builder, org, ref string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{builder: builder, org: org, ref: ref, logger: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	// Browsers ask for these on every visit; they are not projects.
	mux.HandleFunc("/favicon.ico", http.NotFound)
	mux.HandleFunc("/robots.txt", http.NotFound)
	// "/healthz" is matched exactly, a project of that name stays
	// reachable at "/healthz/".
	mux.HandleFunc("/", s.handlePage)
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, err := gonanoid.Generate(requestIDAlphabet, 8)
	if err != nil {
		reqID = "-"
	}
	start := time.Now()

	project, err := models.ProjectFromPath(s.org, s.ref, r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	built, err := s.builder.Build(r.Context(), project)
	if err != nil {
		s.logger.Printf("req=%s project=%s build failed: %v", reqID, project.Name, err)
		http.Error(w, "failed to build page", http.StatusInternalServerError)
		return
	}
	if built.FetchErr != nil {
		s.logger.Printf("req=%s project=%s readme unavailable: %v", reqID, project.Name, built.FetchErr)
	}

	var buf bytes.Buffer
	if err := built.Document.Render(&buf); err != nil {
		s.logger.Printf("req=%s project=%s render failed: %v", reqID, project.Name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.Header().Set("X-Readme-Source", string(built.Source))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}

	s.logger.Printf("req=%s project=%s source=%s took=%s", reqID, project.Name, built.Source, time.Since(start).Round(time.Millisecond))
}

// Serve runs the HTTP server on l until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("server listening at %v", l.Addr())
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}
