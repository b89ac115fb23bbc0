package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the fixed window the requests are counted in
	Window time.Duration
	// KeyFunc returns the bucket a request is counted against (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is shown to the visitor when the limit is exceeded
	Message string
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter counts requests per key in fixed windows
type RateLimiter struct {
	config RateLimitConfig
	now    func() time.Time

	mu    sync.Mutex
	store map[string]*rateLimitEntry
}

// NewRateLimiter creates a limiter. Expired buckets are swept lazily by
// Allow, so no background goroutine is needed.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	return &RateLimiter{
		config: config,
		now:    time.Now,
		store:  make(map[string]*rateLimitEntry),
	}
}

// Allow counts one request for key. When the bucket is full it returns false
// and the time left until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.store) > 1024 {
		rl.sweepLocked(now)
	}

	entry, ok := rl.store[key]
	if !ok || !now.Before(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true, 0
	}
	if entry.count >= rl.config.Requests {
		return false, entry.expiresAt.Sub(now)
	}
	entry.count++
	return true, 0
}

func (rl *RateLimiter) sweepLocked(now time.Time) {
	for key, entry := range rl.store {
		if !now.Before(entry.expiresAt) {
			delete(rl.store, key)
		}
	}
}

// Middleware rejects requests over the limit with 429. HTMX requests get an
// HX-Trigger event instead of a swap so the widget on screen is left intact.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retry := rl.Allow(rl.config.KeyFunc(c))
			if ok {
				return next(c)
			}

			seconds := int(retry.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))

			if c.Request().Header.Get("HX-Request") == "true" {
				c.Response().Header().Set("HX-Reswap", "none")
				c.Response().Header().Set("HX-Trigger", `{"rate-limited":{"message":"`+rl.config.Message+`"}}`)
				return c.NoContent(http.StatusTooManyRequests)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

// PublicFormRateLimiter limits lead form submissions to 10 per minute per IP
var PublicFormRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 10,
	Window:   time.Minute,
	Message:  "Too many form submissions. Please wait before trying again.",
})

// FormEditRateLimiter covers the modal endpoints other than submit
var FormEditRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 120,
	Window:   time.Minute,
	KeyFunc:  visitorOrIP,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})

// ChatbotRateLimiter limits chatbot interactions to 60 per minute per visitor
var ChatbotRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 60,
	Window:   time.Minute,
	KeyFunc:  visitorOrIP,
	Message:  "You're sending messages too quickly. Please slow down.",
})

// EventsRateLimiter limits analytics beacons to 120 per minute per visitor
var EventsRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 120,
	Window:   time.Minute,
	KeyFunc:  visitorOrIP,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})

func visitorOrIP(c echo.Context) string {
	if id := GetSessionID(c); id != "" {
		return "visitor:" + id
	}
	return c.RealIP()
}
