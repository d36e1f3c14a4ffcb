package service

import (
	"context"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingLimiter limita envios de calificaciones por clave (IP del cliente).
// Las implementaciones fallan abiertas: si el backend no responde, permiten.
type RatingLimiter interface {
	Allow(key string) bool
}

// redisRatingAllowScript cuenta envios dentro de la ventana nombrada por la clave.
// La clave ya incluye el inicio de la ventana; el EXPIRE solo limpia.
const redisRatingAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

const redisRatingPrefix = "ratemyrep:rate:"

type redisRatingLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
	now    func() time.Time
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisRatingLimiter(client *redis.Client, window time.Duration, max int) RatingLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisRatingLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: redisRatingPrefix,
		now:    time.Now,
	}
}

// Allow usa ventanas fijas alineadas al reloj, las mismas para todas las replicas
// de la API: rate:<cliente>:<inicio de ventana>.
func (l *redisRatingLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	client := clientKey(key)
	if client == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	now := time.Now
	if l.now != nil {
		now = l.now
	}
	windowStart := now().Truncate(l.window).Unix()
	redisKey := l.prefix + client + ":" + strconv.FormatInt(windowStart, 10)
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisRatingAllowScript, []string{redisKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}

// clientKey agrupa las direcciones de un mismo votante. IPv4 queda tal cual,
// IPv4 mapeada a IPv6 se desmapea y IPv6 se reduce a su /64, que un proveedor
// asigna entero a un solo hogar. Lo que no es IP ("unknown") va en minusculas.
func clientKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ""
	}
	addr, err := netip.ParseAddr(key)
	if err != nil {
		return key
	}
	addr = addr.WithZone("").Unmap()
	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.Prefix(64)
	if err != nil {
		return key
	}
	return prefix.String()
}

// memoryRatingLimiter es una ventana fija por clave para un solo proceso.
type memoryRatingLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	now     func() time.Time
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

func NewMemoryRatingLimiter(window time.Duration, max int) RatingLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryRatingLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *memoryRatingLimiter) Allow(key string) bool {
	normalizedKey := clientKey(key)
	if normalizedKey == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[normalizedKey]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[normalizedKey] = b
		l.sweep(now)
	}
	b.count++
	return b.count <= l.max
}

// sweep borra ventanas vencidas para que el mapa no crezca sin limite.
func (l *memoryRatingLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if !now.Before(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}
