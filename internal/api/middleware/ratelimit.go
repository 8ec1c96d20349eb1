package middleware

import (
	"net"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"Chirp/internal/api/handlers"
)

// DefaultMaxTrackedClients bounds memory used by per-IP limiters
const DefaultMaxTrackedClients = 10000

// RateLimiter is an in-memory per-IP token bucket throttle for the whole API.
// It is per instance; the per-author post quota lives in Redis.
// Least recently seen clients are evicted once maxClients is reached.
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	logger   logrus.FieldLogger
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a new rate limiter
// requestsPerSecond: sustained rate per client
// burst: maximum requests a client may make at once
func NewRateLimiter(requestsPerSecond float64, burst, maxClients int, logger logrus.FieldLogger) (*RateLimiter, error) {
	if maxClients <= 0 {
		maxClients = DefaultMaxTrackedClients
	}
	cache, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		limiters: cache,
		logger:   logger,
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
	}, nil
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)

		if !rl.allow(clientIP) {
			rl.logger.WithFields(logrus.Fields{
				"ip":     clientIP,
				"method": r.Method,
				"path":   r.URL.Path,
			}).Info("request throttled")
			handlers.WriteError(w, http.StatusTooManyRequests, handlers.KindTooManyRequests,
				"Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(clientIP string) bool {
	limiter, ok := rl.limiters.Get(clientIP)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		// Another request may have raced us; keep whichever landed first
		if existing, found, _ := rl.limiters.PeekOrAdd(clientIP, limiter); found {
			limiter = existing
		}
	}
	return limiter.Allow()
}

// getClientIP keys the throttle on the connection's peer address. Forwarding headers
// are client-controlled, so they are only honoured when the router mounts chi's RealIP
// behind a trusted proxy, which rewrites RemoteAddr before this runs.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
