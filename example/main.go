package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jpalmerr/courtboard"
	"github.com/jpalmerr/courtboard/example/mockstatus"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	// start mock backend (see mockstatus)
	backend := mockstatus.New(time.Now().UnixNano(), slog.Default())
	go func() {
		if err := http.ListenAndServe(":9000", backend.Handler()); err != nil {
			slog.Error("mock backend error", "error", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	b, err := courtboard.New(
		courtboard.WithStatusURL("http://localhost:9000/api/status"),
		courtboard.WithPollingInterval(5*time.Second),
		courtboard.WithTitle("Courtboard Demo"),
		courtboard.WithPort(8080),
		courtboard.WithRenderCallback(func(r courtboard.RenderResult) {
			slog.Info("rendered", "label", r.Label, "rooms", r.RoomCount)
		}),
	)
	if err != nil {
		slog.Error("failed to create board", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Courtboard Demo                                     ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Mock backend on :9000, bookings change every        ║")
	fmt.Println("  ║   20-60s, board refreshes every 5s                    ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		slog.Error("courtboard error", "error", err)
		os.Exit(1)
	}
}
