package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	DBPath         string
	MaxStores      int           // лимит магазинов по умолчанию для /cart/optimize
	MaxSubsets     int           // потолок перебора подмножеств магазинов
	SuggestLimit   int           // сколько категорий показывать, если ничего не нашли
	RateLimitRPS   float64
	RateLimitBurst int
	SessionIdleTTL time.Duration
	AdminIDs       []string
}

func Load() Config {
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         atoienv("PORT", 8082),
		AllowOrigins: splitList(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  atoienv("MAX_UPLOAD_MB", 32),
		LogFile:      getenv("LOG_FILE", "logs/basket-service.log"),

		DBPath:         getenv("DB_PATH", "data/basket.db"),
		MaxStores:      positive(atoienv("MAX_STORES", 2), 2),
		MaxSubsets:     positive(atoienv("MAX_SUBSETS", 200000), 200000),
		SuggestLimit:   positive(atoienv("SUGGEST_LIMIT", 10), 10),
		RateLimitRPS:   floatenv("RATE_LIMIT_RPS", 20),
		RateLimitBurst: positive(atoienv("RATE_LIMIT_BURST", 40), 40),
		SessionIdleTTL: durenv("SESSION_IDLE_TTL", 24*time.Hour),
		AdminIDs:       splitList(getenv("ADMIN_IDS", "")),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoienv(k string, def int) int {
	n, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return n
}

func floatenv(k string, def float64) float64 {
	f, err := strconv.ParseFloat(getenv(k, ""), 64)
	if err != nil || f < 0 {
		return def
	}
	return f
}

func durenv(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(k, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// "a, b,,c" → [a b c]
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
