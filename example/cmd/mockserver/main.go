// Standalone mock status backend for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/courtboard serve -c example/config.yaml
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jpalmerr/courtboard/example/mockstatus"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	fmt.Println("Mock status backend starting on :9000")
	fmt.Println("  daily: http://localhost:9000/api/status")
	fmt.Println("  flat:  http://localhost:9000/api/legacy/status")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	backend := mockstatus.New(time.Now().UnixNano(), slog.Default())
	if err := http.ListenAndServe(":9000", backend.Handler()); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
