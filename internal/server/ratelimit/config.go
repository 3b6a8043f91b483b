package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier is one endpoint class with its own budget. Path matching is exact,
// or prefix when the path ends with "/". A Limit of zero means unlimited.
type Tier struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Exempt          map[string]bool
	Tiers           []Tier
}

// LoadConfig reads limiter settings from the environment, falling back to
// sensible defaults: generous budgets for taxonomy reads, tight budgets for
// anything that spends completion tokens.
func LoadConfig() *Config {
	enabled := envBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Exempt:          parseClientList(os.Getenv("RATE_LIMIT_EXEMPT")),
		Tiers:           DefaultTiers(),
	}
}

// DefaultTiers returns the built-in endpoint classes.
func DefaultTiers() []Tier {
	return []Tier{
		// Health checks are unlimited.
		{Path: "/health", Method: "GET", Limit: 0},

		// Completion-backed endpoints. A batch transform can spend a
		// completion call per skill, so it gets the tightest budget.
		{Path: "/transform/batch", Method: "POST", Limit: 6, Window: time.Hour, Burst: 2},
		{Path: "/transform/stream", Method: "POST", Limit: 6, Window: time.Hour, Burst: 2},
		{Path: "/transform", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/roles", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/recommend", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// Taxonomy reads proxy a metered upstream; cap them below the
		// default so one client cannot drain the Lightcast quota.
		{Path: "/skills", Method: "GET", Limit: 120, Window: time.Minute, Burst: 30},
		{Path: "/skills/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 30},
	}
}

// matchTier finds the tier for a path and method: exact match first, then
// trailing-slash prefix match.
func (c *Config) matchTier(path, method string) *Tier {
	for i := range c.Tiers {
		t := &c.Tiers[i]
		if t.Path == path && t.Method == method {
			return t
		}
	}
	for i := range c.Tiers {
		t := &c.Tiers[i]
		if t.Method == method && strings.HasSuffix(t.Path, "/") && strings.HasPrefix(path, t.Path) {
			return t
		}
	}
	return nil
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func parseClientList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			result[entry] = true
		}
	}
	return result
}
