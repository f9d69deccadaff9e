package studio

import (
	"testing"
	"time"
)

func TestResolveSeedFixed(t *testing.T) {
	now := time.Now()
	for _, v := range []int64{42, 0, -7} {
		if got := ResolveSeed(SeedConfig{Value: v}, now); got != v {
			t.Fatalf("ResolveSeed(%d) = %d", v, got)
		}
	}
}

func TestResolveSeedRandomRange(t *testing.T) {
	for _, now := range []time.Time{
		time.Now(),
		time.UnixMilli(0),
		time.UnixMilli(999_999_999),
		time.UnixMilli(1_000_000_000),
		time.UnixMilli(-1),
	} {
		got := ResolveSeed(SeedConfig{Value: 42, Random: true}, now)
		if got < 0 || got >= 1_000_000_000 {
			t.Fatalf("seed %d out of range for %v", got, now)
		}
	}
	if got := ResolveSeed(SeedConfig{Random: true}, time.UnixMilli(1_000_000_005)); got != 5 {
		t.Fatalf("got %d", got)
	}
}
