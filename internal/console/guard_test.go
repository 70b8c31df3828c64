package console

import (
	"testing"
	"time"
)

func TestGuard(t *testing.T) {
	now := time.Date(2025, 11, 30, 10, 0, 0, 0, time.UTC)
	g := NewGuard(time.Minute)
	g.now = func() time.Time { return now }

	if !g.Begin("a") {
		t.Fatal("expected first Begin to succeed")
	}
	if g.Begin("a") {
		t.Fatal("expected in-flight token to be rejected")
	}
	if !g.Begin("b") {
		t.Fatal("expected other tokens to be independent")
	}

	g.Finish("b", false)
	if !g.Begin("b") {
		t.Fatal("expected failed token to be released")
	}

	g.Finish("a", true)
	if g.Begin("a") {
		t.Fatal("expected completed token to be rejected")
	}

	now = now.Add(2 * time.Minute)
	if !g.Begin("a") {
		t.Fatal("expected completed token to expire")
	}
}

func TestGuardIgnoresEmptyToken(t *testing.T) {
	g := NewGuard(time.Minute)

	if !g.Begin("") || !g.Begin("") {
		t.Fatal("expected empty token to be unguarded")
	}
	g.Finish("", true)
	if !g.Begin("") {
		t.Fatal("expected empty token to stay unguarded")
	}
}
