package http

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestStartReportsListenerFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = ln.Close() }()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := NewServer(nil, WithHost("127.0.0.1"), WithPort(port))

	select {
	case startErr := <-srv.Start():
		if startErr == nil {
			t.Fatal("expected listener error on occupied port")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("listener failure never surfaced")
	}
}

func TestStartThenGracefulStopSendsNothing(t *testing.T) {
	srv := NewServer(nil, WithHost("127.0.0.1"), WithPort(0))
	errCh := srv.Start()

	// Give the listener a moment to come up before shutting down.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	select {
	case err := <-errCh:
		t.Fatalf("unexpected server error after graceful stop: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}
