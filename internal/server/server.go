// Package server provides the canned HTTP server.
package server

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/canned/canned/internal/responses"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Server represents the canned HTTP server.
type Server struct {
	httpServer *http.Server
	table      *responses.Table
	variant    responses.Variant
	log        *logrus.Logger
	errorLog   *io.PipeWriter
}

// Config holds server configuration.
type Config struct {
	Addr    string
	Variant responses.Variant // only used for logging
}

// New creates a new server answering from table.
func New(cfg *Config, table *responses.Table, logger *logrus.Logger) *Server {
	s := &Server{
		table:   table,
		variant: cfg.Variant,
		log:     logger,
	}

	s.errorLog = logger.WriterLevel(logrus.DebugLevel)

	// The handler is installed directly; a ServeMux would clean and redirect
	// paths before the exact-match lookup sees them.
	s.httpServer = &http.Server{
		Addr:     cfg.Addr,
		Handler:  s,
		ErrorLog: log.New(s.errorLog, "", 0),
	}

	return s
}

// Start listens on the configured address and serves until the listener
// fails or the server is closed.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ln)
}

// Serve serves requests accepted on ln.
func (s *Server) Serve(ln net.Listener) error {
	s.log.WithFields(logrus.Fields{
		"addr":    ln.Addr().String(),
		"variant": string(s.variant),
	}).Info("listening")
	return s.httpServer.Serve(ln)
}

// Close closes the listener and all connections immediately. In-flight
// requests are not drained.
func (s *Server) Close() error {
	err := s.httpServer.Close()
	s.errorLog.Close()
	return err
}

// Addr returns the configured server address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the request handler.
func (s *Server) Handler() http.Handler {
	return s
}

// requestLog returns a request-scoped log entry, or nil when debug logging
// is off.
func (s *Server) requestLog(r *http.Request) *logrus.Entry {
	if !s.log.IsLevelEnabled(logrus.DebugLevel) {
		return nil
	}
	return s.log.WithFields(logrus.Fields{
		"request_id": uuid.New().String(),
		"method":     r.Method,
		"target":     r.RequestURI,
		"remote":     r.RemoteAddr,
	})
}

// ServeHTTP answers every request from the response table.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entry := s.table.Lookup(r.RequestURI)
	reqLog := s.requestLog(r)

	if s.table.WaitForBody() {
		if _, err := io.Copy(io.Discard, r.Body); err != nil {
			// The body never ended, so there is nothing to answer.
			if reqLog != nil {
				reqLog.WithError(err).Debug("request body did not complete")
			}
			panic(http.ErrAbortHandler)
		}
	} else {
		// Without full duplex net/http drains the unread body before it
		// sends the response headers.
		if err := http.NewResponseController(w).EnableFullDuplex(); err != nil && reqLog != nil {
			reqLog.WithError(err).Debug("full duplex not supported")
		}
	}

	if entry.Delay > 0 {
		select {
		case <-time.After(entry.Delay):
		case <-r.Context().Done():
			if reqLog != nil {
				reqLog.WithError(r.Context().Err()).Debug("client gone during delay")
			}
			panic(http.ErrAbortHandler)
		}
	}

	h := w.Header()
	h["Content-Type"] = nil
	h.Set("Content-Length", strconv.Itoa(s.table.ContentLength()))
	w.WriteHeader(http.StatusOK)

	_, err := io.WriteString(w, entry.Body)
	if reqLog == nil {
		return
	}
	if err != nil {
		reqLog.WithError(err).Debug("write failed")
	}
	reqLog.WithFields(logrus.Fields{
		"delay":   entry.Delay,
		"elapsed": time.Since(start),
	}).Debug("served")
}
