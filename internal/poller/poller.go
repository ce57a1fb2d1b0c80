package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultInterval = 15 * time.Second

// Handler interprets a successfully fetched body. A returned error fails the
// cycle; the handler is responsible for applying any side effects itself.
type Handler[T any] func(ctx context.Context, cycleID string, body []byte) (T, error)

// Poller refreshes one status resource.
type Poller[T any] struct {
	req      Request
	fetcher  Fetcher
	interval time.Duration
	handle   Handler[T]
	logger   *slog.Logger
}

// New creates a [Poller]. A non-positive interval means 15 seconds. The fetcher is typically a [*Client]; tests
// substitute their own to control when responses resolve.
func New[T any](req Request, fetcher Fetcher, interval time.Duration, handle func(ctx context.Context, cycleID string, body []byte) (T, error), logger *slog.Logger) *Poller[T] {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller[T]{
		req:      req,
		fetcher:  fetcher,
		interval: interval,
		handle:   handle,
		logger:   logger,
	}
}

// Interval returns the time between refreshes.
func (p *Poller[T]) Interval() time.Duration {
	return p.interval
}

// Refresh starts one cycle and returns without waiting for it.
//
// Failures are logged and recorded on the returned [Cycle]; they never
// panic and never schedule a retry.
func (p *Poller[T]) Refresh(ctx context.Context) *Cycle[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	c := newCycle[T]()
	go p.run(ctx, c)
	return c
}

func (p *Poller[T]) run(ctx context.Context, c *Cycle[T]) {
	defer close(c.done)

	resp := p.fetcher.Fetch(ctx, p.req)
	c.statusCode = resp.StatusCode
	c.latency = resp.Latency

	attrs := []any{
		"cycle_id", c.ID,
		"url", p.req.URL,
		"status_code", resp.StatusCode,
		"latency_ms", resp.Latency.Milliseconds(),
	}

	if resp.Error != nil {
		c.err = resp.Error
		p.logger.Warn("status refresh failed", append(attrs, "error", resp.Error.Error())...)
		return
	}

	value, err := p.safeHandle(ctx, c.ID, resp.Body)
	if err != nil {
		c.err = err
		p.logger.Warn("status refresh failed", append(attrs, "error", err.Error())...)
		return
	}

	c.value = value
	p.logger.Debug("status refreshed", attrs...)
}

// safeHandle calls the handler with panic recovery. A panic is logged with
// its stack under a correlation ID and turned into an error.
func (p *Poller[T]) safeHandle(ctx context.Context, cycleID string, body []byte) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("status handler panic",
				"correlation_id", correlationID,
				"cycle_id", cycleID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			var zero T
			value = zero
			err = fmt.Errorf("status handler panic (correlation_id: %s)", correlationID)
		}
	}()
	return p.handle(ctx, cycleID, body)
}

// Start runs one refresh immediately, before returning, and then one on
// every interval tick until the handle is stopped or ctx is cancelled.
//
// Ticks do not wait for earlier cycles; overlapping cycles are allowed.
func (p *Poller[T]) Start(ctx context.Context) *Handle {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	first := p.Refresh(ctx)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
		ready:  first.Done(),
	}
	h.track(first.Done())

	go func() {
		defer close(h.done)
		defer h.inflight.Wait()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.track(p.Refresh(ctx).Done())
			}
		}
	}()

	return h
}

// Handle owns a running [Poller.Start] loop.
type Handle struct {
	cancel   context.CancelFunc
	done     chan struct{}
	ready    <-chan struct{}
	stopOnce sync.Once
	inflight sync.WaitGroup

	mu      sync.Mutex
	started int
}

func (h *Handle) track(cycleDone <-chan struct{}) {
	h.mu.Lock()
	h.started++
	h.mu.Unlock()

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		<-cycleDone
	}()
}

// Stop cancels the timer and any in-flight cycles and waits for them.
// Safe to call more than once.
func (h *Handle) Stop() {
	h.stopOnce.Do(h.cancel)
	<-h.done
}

// Done is closed once the loop has exited and in-flight cycles finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Ready is closed once the load-time refresh has finished, successfully or
// not.
func (h *Handle) Ready() <-chan struct{} {
	return h.ready
}

// Started returns how many cycles have been started.
func (h *Handle) Started() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}
