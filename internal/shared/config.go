package shared

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // TIME_ZONE must resolve in minimal containers

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	// empty CatalogBase selects the fixture catalog (mock mode)
	CatalogBase    string
	CatalogKey     string
	CatalogTimeout time.Duration
	CatalogRPS     int
	MockLatencyMin time.Duration
	MockLatencyMax time.Duration

	// empty BookingEndpoint selects demo acceptance
	BookingEndpoint  string
	BookingTimeout   time.Duration
	BookingDemoDelay time.Duration
	BookingLocale    string
	TimeZone         *time.Location

	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	WarmWorkers int
}

func (c Config) MockMode() bool { return c.CatalogBase == "" }

func (c Config) DemoBooking() bool { return c.BookingEndpoint == "" }

// Load reads the environment, after an optional .env file in the working
// directory. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	ms := func(k string, def int) time.Duration { return time.Duration(atoi(k, def)) * time.Millisecond }
	secs := func(k string, def int) time.Duration { return time.Duration(atoi(k, def)) * time.Second }

	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		LogLevel:         env("LOG_LEVEL", "info"),
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		MetricsAddr:      env("METRICS_ADDR", ""),
		CatalogBase:      env("CATALOG_API_BASE_URL", ""),
		CatalogKey:       env("CATALOG_API_KEY", ""),
		CatalogTimeout:   secs("CATALOG_TIMEOUT_SECONDS", 10),
		CatalogRPS:       atoi("CATALOG_RPS", 5),
		MockLatencyMin:   ms("MOCK_LATENCY_MIN_MS", 800),
		MockLatencyMax:   ms("MOCK_LATENCY_MAX_MS", 1500),
		BookingEndpoint:  env("BOOKING_ENDPOINT", ""),
		BookingTimeout:   secs("BOOKING_TIMEOUT_SECONDS", 10),
		BookingDemoDelay: ms("BOOKING_DEMO_DELAY_MS", 1200),
		BookingLocale:    env("BOOKING_LOCALE", "ru"),
		RedisAddr:        env("REDIS_ADDR", ""),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		CacheTTL:         secs("CACHE_TTL_SECONDS", 300),
		WarmWorkers:      atoi("WARM_WORKERS", 4),
	}

	tz := env("TIME_ZONE", "Europe/Moscow")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn().Err(err).Str("tz", tz).Msg("unknown time zone, using UTC")
		loc = time.UTC
	}
	c.TimeZone = loc

	if c.MockMode() {
		log.Warn().Msg("CATALOG_API_BASE_URL is empty; serving fixture catalog")
	}
	if c.DemoBooking() {
		log.Warn().Msg("BOOKING_ENDPOINT is empty; bookings are accepted in demo mode only")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
