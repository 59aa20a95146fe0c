package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const bucketTTL = 5 * time.Minute

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter applies a token bucket per client IP. Used on the login and
// register endpoints to slow credential stuffing; idle buckets are evicted
// after five minutes. Stop ends the eviction goroutine.
type RateLimiter struct {
	burst     int
	perSecond float64

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(burst int, perSecond float64) *RateLimiter {
	l := &RateLimiter{
		burst:     burst,
		perSecond: perSecond,
		buckets:   make(map[string]*bucket),
		stop:      make(chan struct{}),
	}
	go l.evict()
	return l
}

func (l *RateLimiter) evict() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for k, b := range l.buckets {
				if now.Sub(b.seen) > bucketTTL {
					delete(l.buckets, k)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}

		l.mu.Lock()
		b, ok := l.buckets[ip]
		if !ok {
			b = &bucket{lim: rate.NewLimiter(rate.Limit(l.perSecond), l.burst)}
			l.buckets[ip] = b
		}
		b.seen = time.Now()
		l.mu.Unlock()

		if !b.lim.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
