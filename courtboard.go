package courtboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpalmerr/courtboard/dashboard"
	"github.com/jpalmerr/courtboard/internal/page"
	"github.com/jpalmerr/courtboard/internal/poller"
	"github.com/jpalmerr/courtboard/internal/render"
	"github.com/jpalmerr/courtboard/internal/schema"
	"github.com/jpalmerr/courtboard/internal/server"
)

const (
	defaultPort     = 8080
	defaultTimeout  = 10 * time.Second
	defaultStatusID = "status"
	defaultListID   = "roomList"
)

// Board polls the status resource and renders it into the status and list
// targets of its document.
//
// The typical lifecycle is:
//
//	b, err := courtboard.New(courtboard.WithStatusURL(u))
//	if err != nil {
//	    slog.Error("failed to create board", "error", err)
//	    os.Exit(1)
//	}
//	b.Start(ctx) // blocks until ctx is cancelled
type Board struct {
	title           string
	statusURL       string
	schema          Schema
	pollingInterval time.Duration
	port            int
	statusID        string
	listID          string
	logger          *slog.Logger
	renderCallbacks []func(RenderResult)

	client   *poller.Client
	poller   *poller.Poller[RenderResult]
	renderer *render.Renderer
	doc      *page.Document
}

// New creates a [Board]. [WithStatusURL] is required.
//
// Defaults:
//   - Schema: [SchemaDaily]
//   - Polling interval: the schema's default (15s daily, 30s flat)
//   - Request timeout: 10 seconds
//   - Port: 8080
//   - Locale: simplified Chinese
//   - Targets: "status" and "roomList"
func New(opts ...Option) (*Board, error) {
	cfg := &boardConfig{
		schema:   SchemaDaily,
		timeout:  defaultTimeout,
		port:     defaultPort,
		statusID: defaultStatusID,
		listID:   defaultListID,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.statusURL == "" {
		return nil, errors.New("status URL is required")
	}

	locale, err := render.ParseLocale(cfg.locale)
	if err != nil {
		return nil, err
	}

	interval := cfg.pollingInterval
	if interval == 0 {
		interval = cfg.schema.DefaultInterval()
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &Board{
		title:           cfg.title,
		statusURL:       cfg.statusURL,
		schema:          cfg.schema,
		pollingInterval: interval,
		port:            cfg.port,
		statusID:        cfg.statusID,
		listID:          cfg.listID,
		logger:          logger,
		renderCallbacks: cfg.renderCallbacks,
		client:          poller.NewClient(),
		renderer:        render.NewRenderer(locale),
		doc:             page.NewDocument(cfg.statusID, cfg.listID),
	}

	req := poller.Request{
		URL:     cfg.statusURL,
		Headers: copyMap(cfg.headers),
		Timeout: cfg.timeout,
	}
	b.poller = poller.New(req, b.client, interval, b.renderBody, logger)

	return b, nil
}

// Refresh runs one cycle: fetch, decode, render and apply. It returns
// immediately; the returned [Cycle] resolves when the cycle has finished.
//
// A failed cycle is logged and leaves the targets untouched.
func (b *Board) Refresh(ctx context.Context) *Cycle {
	return b.poller.Refresh(ctx)
}

// StartPolling refreshes once before returning and then on every polling
// interval until the returned [Handle] is stopped or ctx is cancelled.
func (b *Board) StartPolling(ctx context.Context) *Handle {
	b.logger.Info("polling started",
		"url", b.statusURL,
		"schema", b.schema.String(),
		"interval", b.pollingInterval.String(),
	)
	return b.poller.Start(ctx)
}

// Start polls the status resource and serves the dashboard.
//
// Start blocks until ctx is cancelled and returns nil on graceful shutdown.
// It returns an error if the HTTP server fails to start.
func (b *Board) Start(ctx context.Context) error {
	b.logger.Info("courtboard starting", "url", b.statusURL)
	b.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", b.port))

	if ctx.Err() != nil {
		return nil
	}

	handle := b.StartPolling(ctx)
	cleanup := func() {
		handle.Stop()
		b.client.Close()
	}

	httpServer := server.NewServer(b.doc, b.port, dashboard.Assets, server.PageConfig{
		Title:    b.title,
		StatusID: b.statusID,
		ListID:   b.listID,
	}, b.logger)
	if err := httpServer.Start(ctx); err != nil {
		cleanup()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	cleanup()
	b.logger.Info("courtboard stopped")
	return nil
}

// renderBody is the poller handler: it decodes body under the board's
// schema, renders it and writes it into the document.
func (b *Board) renderBody(_ context.Context, cycleID string, body []byte) (RenderResult, error) {
	availability, err := schema.Decode(b.schema, body)
	if err != nil {
		return RenderResult{}, err
	}

	rendered := b.renderer.Render(availability)
	err = b.doc.Apply(page.Update{
		StatusID: b.statusID,
		ListID:   b.listID,
		Label:    rendered.Label,
		Color:    string(rendered.Color),
		ListHTML: rendered.ListHTML,
	})
	if err != nil {
		return RenderResult{}, err
	}

	result := RenderResult{
		CycleID:    cycleID,
		Available:  rendered.Available,
		Label:      rendered.Label,
		Color:      string(rendered.Color),
		ListHTML:   rendered.ListHTML,
		RoomCount:  availability.RoomCount(),
		Groups:     availability.Groups,
		RenderedAt: time.Now(),
	}

	b.logger.Debug("status rendered",
		"cycle_id", cycleID,
		"available", result.Available,
		"rooms", result.RoomCount,
	)

	for _, cb := range b.renderCallbacks {
		invokeCallbackSafe(cb, result, b.logger)
	}

	return result, nil
}

// Targets returns a snapshot of the presentation targets.
func (b *Board) Targets() []Target {
	return b.doc.Snapshot()
}

// Schema returns the configured payload schema.
func (b *Board) Schema() Schema {
	return b.schema
}

// PollingInterval returns the time between refreshes.
func (b *Board) PollingInterval() time.Duration {
	return b.pollingInterval
}

// Port returns the dashboard port.
func (b *Board) Port() int {
	return b.port
}

// StatusURL returns the URL of the status resource.
func (b *Board) StatusURL() string {
	return b.statusURL
}

// Title returns the dashboard title, empty when the default is used.
func (b *Board) Title() string {
	return b.title
}

// Locale returns the BCP 47 tag of the label language.
func (b *Board) Locale() string {
	return b.renderer.Locale().String()
}

// Close releases idle connections held by the HTTP client. It is only
// needed when the board is driven through [Board.Refresh] or
// [Board.StartPolling]; [Board.Start] cleans up on its own.
func (b *Board) Close() {
	b.client.Close()
}

// invokeCallbackSafe calls a render callback with panic recovery.
func invokeCallbackSafe(cb func(RenderResult), result RenderResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("render callback panicked",
				"panic", r,
				"cycle_id", result.CycleID,
			)
		}
	}()
	cb(result)
}

// copyMap returns a shallow copy of the map.
func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
