// File: server/run.go
// Package server implements the accept loop, per-connection dispatch, and
// graceful shutdown.
// License: Apache-2.0

package server

import (
	"errors"
	"net"

	"github.com/google/uuid"

	"github.com/httpool/httpool/api"
	"github.com/httpool/httpool/protocol"
)

// Run accepts connections until Shutdown, submitting one pool job per
// accepted connection. Acceptance itself is sequential and blocking; only
// connection handling is delegated to the pool. Accept failures are routed
// to the error handler and the loop continues.
func (s *Server) Run() error {
	// Route table freezes here; bake the middleware chain in once.
	for i := range s.routes {
		s.routes[i].handler = NewHandlerChain(s.routes[i].handler, s.middleware...)
	}

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.shutdownCh:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.routeError(api.WrapError(api.ErrCodeIO, "accept connection", err))
			continue
		}

		connID := uuid.NewString()
		job := func(workerID int) {
			s.handleConn(conn, connID, workerID)
		}
		if err := s.executor.Submit(job); err != nil {
			conn.Close()
			s.routeError(api.WrapError(api.ErrCodeSubmission, "submit connection job", err).
				WithContext("conn", connID))
		}
	}
}

// handleConn runs on a pool worker: read, match, invoke, write, close. The
// connection is owned exclusively by this worker. Read and write failures
// are routed to the error handler; the peer gets no auto-reply.
func (s *Server) handleConn(conn net.Conn, connID string, workerID int) {
	defer conn.Close()

	req, err := protocol.ReadRequest(conn, s.cfg.ReadBufferSize)
	if err != nil {
		code := api.ErrCodeIO
		if errors.Is(err, protocol.ErrMalformedRequest) {
			code = api.ErrCodeParse
		}
		s.routeError(api.WrapError(code, "read request", err).
			WithContext("conn", connID).
			WithContext("remote", conn.RemoteAddr().String()).
			WithContext("worker", workerID))
		return
	}

	var resp *protocol.Response
	if handler, captures := s.match(req.Target); handler != nil {
		resp = handler(req, captures)
	} else if s.defaultHandler != nil {
		resp = s.defaultHandler(req)
	}
	if resp == nil {
		// Declined to answer: close without writing.
		return
	}

	if err := protocol.WriteResponse(conn, resp); err != nil {
		s.routeError(api.WrapError(api.ErrCodeIO, "write response", err).
			WithContext("conn", connID).
			WithContext("remote", conn.RemoteAddr().String()).
			WithContext("worker", workerID))
	}
}

// Shutdown stops accepting and tears the pool down, draining queued jobs.
// Idempotent. Callers must stop submitting work before disposal; a racing
// accept may still see a submission failure, which is routed like any other
// error.
func (s *Server) Shutdown() {
	s.closeOnce.Do(func() {
		close(s.shutdownCh)
		s.ln.Close()
		s.executor.Close()
	})
}
