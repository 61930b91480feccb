package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksPastBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_TokensRefillOverTime(t *testing.T) {
	// 10 tokens per 100ms = one token every 10ms.
	rl := NewRateLimiter(RateLimitConfig{
		Max:    10,
		Window: 100 * time.Millisecond,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 10; i++ {
		rl.Allow("test")
	}
	if rl.Allow("test") {
		t.Fatal("should be blocked with the bucket drained")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.Allow("test") {
		t.Fatal("should be allowed after tokens refill")
	}
}
