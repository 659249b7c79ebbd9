package deps

import (
	"time"

	"github.com/pilldeck/pilldeck/internal/logger"
	"github.com/pilldeck/pilldeck/internal/registry"
	redisstore "github.com/pilldeck/pilldeck/internal/store/redis"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time  // for testing, defaults to time.Now
	Registry          *registry.Registry // authoritative in-memory slot store
	Store             *redisstore.Store  // persistence gateway
	LowStockThreshold int                // tablets_left at or below this => low
	TickTrigger       chan struct{}      // channel to trigger a manual evaluation
}
