package server_test

import (
	"errors"
	"io"
	"net"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/httpool/httpool/api"
	"github.com/httpool/httpool/protocol"
	"github.com/httpool/httpool/server"
)

func newTestServer(t *testing.T, opts ...server.ServerOption) *server.Server {
	t.Helper()
	cfg := server.DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.Workers = 2
	s, err := server.New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// sendRequest dials the server, writes raw and returns everything received
// until the server closes the connection.
func sendRequest(t *testing.T, addr net.Addr, raw string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	data, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestEndToEnd(t *testing.T) {
	s := newTestServer(t, server.WithReuseAddr())
	s.Handle(`^/$`, func(req *protocol.Request, captures []string) *protocol.Response {
		return protocol.OK([]byte("root"))
	})
	go s.Run()
	defer s.Shutdown()

	got := sendRequest(t, s.Addr(), "GET / HTTP/1.1\r\n\r\n")
	want := "HTTP/1.1 200 OK\r\n\r\nroot"
	if got != want {
		t.Errorf("response = %q, want %q", got, want)
	}
}

func TestWorkerPoolSizeDefaultsToCPUCount(t *testing.T) {
	s, err := server.New(&server.Config{ListenAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Shutdown()

	if got, want := s.NumWorkers(), runtime.NumCPU(); got != want {
		t.Errorf("NumWorkers() = %d, want %d for zero Workers config", got, want)
	}
}

func TestWorkersOption(t *testing.T) {
	s := newTestServer(t, server.WithWorkers(3))
	defer s.Shutdown()

	if got := s.NumWorkers(); got != 3 {
		t.Errorf("NumWorkers() = %d, want 3", got)
	}
}

func TestFirstMatchWinsByRegistrationOrder(t *testing.T) {
	s := newTestServer(t)
	s.Handle(`^/`, func(req *protocol.Request, captures []string) *protocol.Response {
		return protocol.OK([]byte("first"))
	})
	s.Handle(`^/a$`, func(req *protocol.Request, captures []string) *protocol.Response {
		return protocol.OK([]byte("second"))
	})
	go s.Run()
	defer s.Shutdown()

	// Both patterns match /a; the one registered first must answer.
	got := sendRequest(t, s.Addr(), "GET /a HTTP/1.1\r\n\r\n")
	want := "HTTP/1.1 200 OK\r\n\r\nfirst"
	if got != want {
		t.Errorf("response = %q, want %q (registration order wins)", got, want)
	}
}

func TestCapturesReachHandler(t *testing.T) {
	s := newTestServer(t)
	s.Handle(`^/echo/(\w+)$`, func(req *protocol.Request, captures []string) *protocol.Response {
		return protocol.OK([]byte(captures[1]))
	})
	go s.Run()
	defer s.Shutdown()

	got := sendRequest(t, s.Addr(), "GET /echo/hello HTTP/1.1\r\n\r\n")
	want := "HTTP/1.1 200 OK\r\n\r\nhello"
	if got != want {
		t.Errorf("response = %q, want %q", got, want)
	}
}

func TestDefaultHandlerFallback(t *testing.T) {
	s := newTestServer(t)
	s.Handle(`^/$`, func(req *protocol.Request, captures []string) *protocol.Response {
		return protocol.OK(nil)
	})
	s.HandleDefault(func(req *protocol.Request) *protocol.Response {
		return protocol.NotFound([]byte("gone"))
	})
	go s.Run()
	defer s.Shutdown()

	got := sendRequest(t, s.Addr(), "GET /missing HTTP/1.1\r\n\r\n")
	want := "HTTP/1.1 404 NOT FOUND\r\n\r\ngone"
	if got != want {
		t.Errorf("response = %q, want %q", got, want)
	}
}

func TestNoMatchNoDefaultClosesWithoutWriting(t *testing.T) {
	errCh := make(chan error, 1)
	s := newTestServer(t)
	s.HandleError(func(err error) { errCh <- err })
	s.Handle(`^/$`, func(req *protocol.Request, captures []string) *protocol.Response {
		return protocol.OK(nil)
	})
	go s.Run()
	defer s.Shutdown()

	if got := sendRequest(t, s.Addr(), "GET /missing HTTP/1.1\r\n\r\n"); got != "" {
		t.Errorf("response = %q, want nothing written", got)
	}
	select {
	case err := <-errCh:
		t.Errorf("error handler invoked for unmatched route: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestParseFailureRoutedToErrorHandler(t *testing.T) {
	errCh := make(chan error, 1)
	s := newTestServer(t)
	s.HandleError(func(err error) { errCh <- err })
	s.Handle(`^/$`, func(req *protocol.Request, captures []string) *protocol.Response {
		return protocol.OK([]byte("root"))
	})
	go s.Run()
	defer s.Shutdown()

	if got := sendRequest(t, s.Addr(), "BOGUS\r\n\r\n"); got != "" {
		t.Errorf("response = %q, want nothing written", got)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, protocol.ErrMalformedRequest) {
			t.Errorf("routed error = %v, want ErrMalformedRequest", err)
		}
		var apiErr *api.Error
		if !errors.As(err, &apiErr) || apiErr.Code != api.ErrCodeParse {
			t.Errorf("routed error = %v, want api.Error with ErrCodeParse", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("error handler not invoked")
	}

	// The accept loop must survive a malformed client.
	got := sendRequest(t, s.Addr(), "GET / HTTP/1.1\r\n\r\n")
	if want := "HTTP/1.1 200 OK\r\n\r\nroot"; got != want {
		t.Errorf("follow-up response = %q, want %q", got, want)
	}
}

func TestMiddlewareWrapsRouteHandlers(t *testing.T) {
	var mu sync.Mutex
	var order []string
	mark := func(name string) server.Middleware {
		return func(next server.Handler) server.Handler {
			return func(req *protocol.Request, captures []string) *protocol.Response {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				return next(req, captures)
			}
		}
	}

	s := newTestServer(t)
	s.Use(mark("outer"), mark("inner"))
	s.Handle(`^/$`, func(req *protocol.Request, captures []string) *protocol.Response {
		mu.Lock()
		order = append(order, "handler")
		mu.Unlock()
		return protocol.OK(nil)
	})
	go s.Run()
	defer s.Shutdown()

	sendRequest(t, s.Addr(), "GET / HTTP/1.1\r\n\r\n")
	mu.Lock()
	defer mu.Unlock()
	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("call order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("call order = %v, want %v", order, want)
		}
	}
}

func TestShutdownEndsRunAndIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	done := make(chan error, 1)
	go func() { done <- s.Run() }()

	time.Sleep(50 * time.Millisecond)
	s.Shutdown()
	s.Shutdown()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil after Shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestBindFailure(t *testing.T) {
	_, err := server.New(&server.Config{ListenAddr: "127.0.0.1:-1"})
	if err == nil {
		t.Fatal("want bind error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Code != api.ErrCodeBind {
		t.Errorf("err = %v, want api.Error with ErrCodeBind", err)
	}
}
