package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisRatingLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisRatingLimiter
		if !l.Allow("203.0.113.7") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		l := &redisRatingLimiter{
			client: &mockRedisEvaler{result: 1},
			window: time.Minute,
			max:    3,
			prefix: redisRatingPrefix,
		}
		if l.Allow("   ") {
			t.Fatalf("expected empty key to be rejected")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 2}
		fixed := time.Date(2025, 7, 9, 12, 1, 30, 0, time.UTC)
		l := &redisRatingLimiter{
			client: mock,
			window: 2 * time.Minute,
			max:    3,
			prefix: redisRatingPrefix,
			now:    func() time.Time { return fixed },
		}
		if !l.Allow(" 2001:DB8::1 ") {
			t.Fatalf("expected allow when count <= max")
		}
		windowStart := time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC).Unix()
		want := "ratemyrep:rate:2001:db8::/64:" + strconv.FormatInt(windowStart, 10)
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != want {
			t.Fatalf("expected key %s, got %+v", want, mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != 120 {
			t.Fatalf("expected TTL seconds=120, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisRatingAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("next window uses a new key", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 1}
		now := time.Date(2025, 7, 9, 12, 0, 59, 0, time.UTC)
		l := &redisRatingLimiter{
			client: mock,
			window: time.Minute,
			max:    3,
			prefix: redisRatingPrefix,
			now:    func() time.Time { return now },
		}
		l.Allow("203.0.113.7")
		first := mock.lastKeys[0]
		now = now.Add(2 * time.Second)
		l.Allow("203.0.113.7")
		if mock.lastKeys[0] == first {
			t.Fatalf("expected a fresh key after the window boundary, got %s twice", first)
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := &redisRatingLimiter{
			client: &mockRedisEvaler{result: 4},
			window: time.Minute,
			max:    3,
			prefix: redisRatingPrefix,
		}
		if l.Allow("203.0.113.7") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisRatingLimiter{
			client: &mockRedisEvaler{err: errors.New("redis down")},
			window: time.Minute,
			max:    3,
			prefix: redisRatingPrefix,
		}
		if !l.Allow("203.0.113.7") {
			t.Fatalf("expected fail-open on redis errors")
		}
	})
}

func TestMemoryRatingLimiter_WindowResets(t *testing.T) {
	now := time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)
	l := NewMemoryRatingLimiter(time.Minute, 2).(*memoryRatingLimiter)
	l.now = func() time.Time { return now }

	if !l.Allow("ip") || !l.Allow("IP") {
		t.Fatalf("expected first two requests allowed")
	}
	if l.Allow("ip") {
		t.Fatalf("expected third request denied")
	}
	if !l.Allow("other") {
		t.Fatalf("expected separate key allowed")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("ip") {
		t.Fatalf("expected allow after window reset")
	}
	if len(l.buckets) != 1 {
		t.Fatalf("expected expired buckets swept, got %d", len(l.buckets))
	}
}

func TestClientKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" 203.0.113.7 ", "203.0.113.7"},
		{"::ffff:203.0.113.7", "203.0.113.7"},
		{"2001:DB8:0:0:aaaa::1", "2001:db8::/64"},
		{"2001:db8::ffff:2", "2001:db8::/64"},
		{"2001:db8:0:1::2", "2001:db8:0:1::/64"},
		{"Unknown", "unknown"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := clientKey(tc.in); got != tc.want {
			t.Fatalf("clientKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMemoryRatingLimiter_GroupsIPv6Prefix(t *testing.T) {
	l := NewMemoryRatingLimiter(time.Minute, 1)
	if !l.Allow("2001:db8::1") {
		t.Fatalf("expected first request allowed")
	}
	if l.Allow("2001:db8::beef") {
		t.Fatalf("expected second address in the same /64 to share the budget")
	}
	if !l.Allow("2001:db8:0:1::1") {
		t.Fatalf("expected a different /64 to have its own budget")
	}
}
