package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimitBytes режет тело запроса; чтение сверх лимита вернёт *http.MaxBytesError.
func LimitBytes(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiters: token bucket на клиента (пользователь, иначе IP).
type limiters struct {
	mu    sync.Mutex
	m     map[string]*visitor
	rps   rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time
}

func (l *limiters) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	v, ok := l.m[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rps, l.burst), seen: now}
		l.m[key] = v
		// ленивая чистка, чтобы карта не росла бесконечно
		if len(l.m)%1024 == 0 {
			for k, o := range l.m {
				if now.Sub(o.seen) > l.idle {
					delete(l.m, k)
				}
			}
		}
	}
	v.seen = now
	return v.lim
}

// RateLimit: при rps <= 0 ограничения нет.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	l := &limiters{
		m:     make(map[string]*visitor),
		rps:   rate.Limit(rps),
		burst: max(burst, 1),
		idle:  10 * time.Minute,
		now:   time.Now,
	}
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.get(clientKey(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey: лимит считается по адресу клиента. X-User-ID задаёт сам клиент,
// поэтому в ключ он не входит.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
