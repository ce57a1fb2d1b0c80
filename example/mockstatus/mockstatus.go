// Package mockstatus is a fake room availability backend for demos.
//
// It serves the daily shape on /api/status and the flat shape on
// /api/legacy/status. Bookings reshuffle every 20-60 seconds.
package mockstatus

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var slots = []string{"09:00-10:00", "10:00-11:00", "15:00-16:00", "19:00-20:00", "20:00-21:00"}

const courts = 4

// Backend holds the simulated bookings.
type Backend struct {
	mu           sync.Mutex
	rng          *rand.Rand
	today        []string
	tomorrow     []string
	nextChangeAt time.Time
	logger       *slog.Logger
}

// New creates a backend seeded with seed.
func New(seed int64, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Backend{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
	b.reshuffle(time.Now())
	return b
}

// Handler returns the gin router serving both payload shapes.
func (b *Backend) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/status", func(c *gin.Context) {
		today, tomorrow := b.snapshot()
		c.JSON(http.StatusOK, gin.H{
			"today_available":    today,
			"tomorrow_available": tomorrow,
		})
	})

	r.GET("/api/legacy/status", func(c *gin.Context) {
		today, _ := b.snapshot()
		c.JSON(http.StatusOK, gin.H{
			"available": len(today) > 0,
			"rooms":     today,
		})
	})

	return r
}

func (b *Backend) snapshot() (today, tomorrow []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now := time.Now(); now.After(b.nextChangeAt) {
		b.reshuffle(now)
		b.logger.Info("bookings changed", "today", len(b.today), "tomorrow", len(b.tomorrow))
	}

	return append([]string{}, b.today...), append([]string{}, b.tomorrow...)
}

// reshuffle picks new free slots. Caller holds mu, except in New.
func (b *Backend) reshuffle(now time.Time) {
	b.today = b.pick("今天")
	b.tomorrow = b.pick("明天")
	b.nextChangeAt = now.Add(time.Duration(20+b.rng.Intn(41)) * time.Second)
}

func (b *Backend) pick(day string) []string {
	free := []string{}
	for court := 1; court <= courts; court++ {
		for _, slot := range slots {
			// roughly one slot in six stays free
			if b.rng.Intn(6) == 0 {
				free = append(free, fmt.Sprintf("【%s】场地ID %d %s", day, court, slot))
			}
		}
	}
	return free
}
