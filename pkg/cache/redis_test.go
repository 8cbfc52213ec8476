package cache

import (
	"context"
	"net"
	"testing"
	"time"
)

// closedPort returns a local port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func TestNewRedisCacheGivesUpAfterConnectRetries(t *testing.T) {
	start := time.Now()
	_, err := NewRedisCache(context.Background(),
		WithRedisHost("127.0.0.1"),
		WithRedisPort(closedPort(t)),
		WithRedisPool(1, 0, time.Second),
		WithRedisConnectRetry(200*time.Millisecond, 1),
	)
	if err == nil {
		t.Fatalf("expected ping error for unreachable redis")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("connect retry not bounded: %v", elapsed)
	}
}

func TestNewRedisCacheHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRedisCache(ctx,
		WithRedisHost("127.0.0.1"),
		WithRedisPort(closedPort(t)),
		WithRedisConnectRetry(time.Second, 100),
	)
	if err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
