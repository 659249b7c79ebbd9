package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultSlotCount is the number of physical compartments in the
// dispenser hardware.
const DefaultSlotCount = 8

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SlotCount         int           // number of physical slots (8)
	LowStockThreshold int           // tablets_left at or below this => low stock
	TickInterval      time.Duration // dispense evaluation interval (default: 60s)
	SeedFile          string        // optional slots.yaml applied on first boot (empty = disabled)

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDialTimeout    time.Duration // ex: 5s
	RedisReadTimeout    time.Duration // ex: 3s
	RedisWriteTimeout   time.Duration // ex: 3s
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PILLDECK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PILLDECK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PILLDECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PILLDECK_PRETTY_LOG", true),

		// Engine
		SlotCount:         getenvInt("PILLDECK_SLOT_COUNT", DefaultSlotCount),
		LowStockThreshold: getenvInt("PILLDECK_LOW_STOCK_THRESHOLD", 5),
		TickInterval:      mustDuration("PILLDECK_TICK_INTERVAL", 60*time.Second),
		SeedFile:          getenv("PILLDECK_SEED_FILE", ""),

		// Redis settings
		RedisAddr:           requireEnv("PILLDECK_REDIS_ADDR"),
		RedisUser:           getenv("PILLDECK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("PILLDECK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("PILLDECK_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("PILLDECK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("PILLDECK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("PILLDECK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("PILLDECK_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("PILLDECK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("PILLDECK_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("PILLDECK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("PILLDECK_REDIS_PING_TIMEOUT", 5*time.Second),
	}

	if cfg.SlotCount < 1 {
		panic(fmt.Sprintf("❌ FATAL: PILLDECK_SLOT_COUNT must be >= 1, got %d", cfg.SlotCount))
	}
	if cfg.TickInterval < time.Second {
		panic(fmt.Sprintf("❌ FATAL: PILLDECK_TICK_INTERVAL must be >= 1s, got %v", cfg.TickInterval))
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
