package utils

import (
	"sort"
	"testing"
	"time"
)

func TestShuffleKeepsElements(t *testing.T) {
	data := []int{0, 0, 1, 1, 2, 2, 3, 3}
	Shuffle(data)
	sort.Ints(data)
	want := []int{0, 0, 1, 1, 2, 2, 3, 3}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("shuffle lost elements: %v", data)
		}
	}
}

func TestDefault(t *testing.T) {
	if Default(0, 5) != 5 {
		t.Error("zero int should fall back")
	}
	if Default(time.Duration(0), time.Second) != time.Second {
		t.Error("zero duration should fall back")
	}
	if Default("a", "b") != "a" {
		t.Error("non-zero string should be kept")
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Unix(0, 0)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }
	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("burst of 2 should pass")
	}
	if rl.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("keys are independent")
	}
	now = now.Add(time.Second)
	if !rl.Allow("a") {
		t.Fatal("token should refill after a second")
	}
}
