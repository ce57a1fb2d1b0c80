package server

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jpalmerr/courtboard/internal/page"
)

const (
	// sseWriteTimeout bounds a single SSE write so a stalled client cannot
	// pin its handler past shutdown.
	sseWriteTimeout = 5 * time.Second

	// sseHeartbeat keeps idle connections open through proxies.
	sseHeartbeat = 25 * time.Second

	// sseRetryMillis is the reconnect delay suggested to browsers.
	sseRetryMillis = 5000

	shutdownTimeout = 5 * time.Second

	defaultTitle = "Courtboard"

	indexPath = "assets/index.html"
)

// Source is the read side of the presentation targets.
type Source interface {
	Snapshot() []page.Target
	Subscribe() <-chan page.Target
	Unsubscribe(ch <-chan page.Target)
}

// PageConfig is substituted into the dashboard page.
type PageConfig struct {
	// Title defaults to "Courtboard".
	Title string

	// StatusID and ListID are the element IDs of the two targets.
	StatusID string
	ListID   string
}

// Server serves the dashboard and its API.
type Server struct {
	source     Source
	port       int
	assets     fs.FS
	page       PageConfig
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates a [Server]. assets may be nil, in which case the
// dashboard route responds with an error. The server is not started until
// [Server.Start] is called.
func NewServer(src Source, port int, assets fs.FS, pc PageConfig, logger *slog.Logger) *Server {
	if pc.Title == "" {
		pc.Title = defaultTitle
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		source: src,
		port:   port,
		assets: assets,
		page:   pc,
		logger: logger,
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Accept", "Cache-Control", "Last-Event-ID"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/", s.handleDashboard)
	router.GET("/api/targets", s.handleTargets)
	router.GET("/api/sse", s.handleSSE)

	return router
}

// Start begins serving in a background goroutine and returns once the
// listener is bound. The server shuts down gracefully when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts derive from ctx so SSE handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// handleDashboard serves index.html with the title and target IDs
// substituted, HTML-escaped.
func (s *Server) handleDashboard(c *gin.Context) {
	if s.assets == nil {
		c.String(http.StatusInternalServerError, "Dashboard not found")
		return
	}

	content, err := fs.ReadFile(s.assets, indexPath)
	if err != nil {
		c.String(http.StatusInternalServerError, "Dashboard not found")
		return
	}

	rendered := strings.NewReplacer(
		"{{.Title}}", html.EscapeString(s.page.Title),
		"{{.StatusID}}", html.EscapeString(s.page.StatusID),
		"{{.ListID}}", html.EscapeString(s.page.ListID),
	).Replace(string(content))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered))
}

// handleTargets returns the current targets as JSON.
func (s *Server) handleTargets(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, s.source.Snapshot())
}

// handleSSE streams target changes.
//
// A new client receives a "connected" event, one "target" event per current
// target, then a "target" event for every change. Each write carries a
// deadline when the connection supports it.
func (s *Server) handleSSE(c *gin.Context) {
	w := c.Writer
	rc := http.NewResponseController(w)
	deadlinesSupported := true

	send := func(ev sse.Event) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Debug("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}
		if err := sse.Encode(w, ev); err != nil {
			return err
		}
		return rc.Flush()
	}

	h := w.Header()
	h.Set("Content-Type", sse.ContentType)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	clientID := uuid.NewString()
	s.logger.Debug("sse client connected", "client_id", clientID, "remote", c.ClientIP())
	defer s.logger.Debug("sse client disconnected", "client_id", clientID)

	ch := s.source.Subscribe()
	defer s.source.Unsubscribe(ch)

	if err := send(sse.Event{
		Event: "connected",
		Retry: sseRetryMillis,
		Data:  map[string]string{"id": clientID},
	}); err != nil {
		return
	}

	for _, t := range s.source.Snapshot() {
		if err := send(sse.Event{Event: "target", Data: t}); err != nil {
			return
		}
	}

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case t, ok := <-ch:
			if !ok {
				return
			}
			if err := send(sse.Event{Event: "target", Data: t}); err != nil {
				return
			}
		case now := <-heartbeat.C:
			if err := send(sse.Event{Event: "ping", Data: now.UTC().Format(time.RFC3339)}); err != nil {
				return
			}
		case <-c.Request.Context().Done():
			// fires on client disconnect and on server shutdown (BaseContext)
			return
		}
	}
}
