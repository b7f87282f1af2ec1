// Package net extends the mirror wire protocol with a websocket
// transport: each accepted connection gets a UUID handshake message,
// then carries the identical controls/display byte streams mirror.wire
// already defines, framed as binary websocket messages instead of raw
// socket writes.
package net

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/bloeys/cellmatrix/mirror"
	"github.com/bloeys/cellmatrix/screen"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Conn adapts a websocket connection's message framing onto the plain
// io.Reader/io.Writer mirror.wire reads and writes through: each Write
// sends one binary message, and Read drains the current message before
// fetching the next with NextReader.
type Conn struct {
	ws *websocket.Conn
	ID uuid.UUID

	r io.Reader
}

func newConn(ws *websocket.Conn, id uuid.UUID) *Conn {
	return &Conn{ws: ws, ID: id}
}

func (c *Conn) Read(p []byte) (int, error) {
	for {
		if c.r != nil {
			n, err := c.r.Read(p)
			if n > 0 {
				return n, nil
			}
			if err != io.EOF {
				return 0, err
			}
			c.r = nil
		}

		_, r, err := c.ws.NextReader()
		if err != nil {
			return 0, err
		}
		c.r = r
	}
}

func (c *Conn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close closes the underlying websocket connection.
func (c *Conn) Close() error { return c.ws.Close() }

// Server exposes a websocket-framed mirror listener alongside a tiny
// health endpoint, routed with gorilla/mux in the manner of a small
// control-plane HTTP surface fronting a byte-stream protocol.
type Server struct {
	router    *mux.Router
	newScreen func() (*screen.Screen, error)
	onConnect func(*mirror.Device, *Conn)
}

// NewServer builds a Server. newScreen allocates the shared cell buffer
// for a freshly connected device; onConnect receives the mirror.Device
// wrapping the new connection and is expected to drive its application
// loop (typically on its own goroutine, so handleMirror can return and
// free the HTTP handler goroutine once the handshake is done).
func NewServer(newScreen func() (*screen.Screen, error), onConnect func(*mirror.Device, *Conn)) *Server {
	s := &Server{router: mux.NewRouter(), newScreen: newScreen, onConnect: onConnect}
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/mirror", s.handleMirror)
	return s
}

// Handler returns the server's http.Handler, for wiring into an
// http.Server or httptest.Server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMirror(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	id := uuid.New()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(id.String())); err != nil {
		ws.Close()
		return
	}

	scr, err := s.newScreen()
	if err != nil {
		ws.Close()
		return
	}

	conn := newConn(ws, id)
	dev := mirror.New(conn, conn, scr)
	if s.onConnect != nil {
		s.onConnect(dev, conn)
	}
}

// CloseAll closes an http.Server and a batch of live connections
// concurrently, returning the first error encountered. Bounding this
// fan-out with errgroup (rather than a sequential loop) keeps shutdown
// latency proportional to the slowest single close, not their sum.
func CloseAll(ctx context.Context, httpServer *http.Server, conns []*Conn) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return httpServer.Shutdown(ctx)
	})

	for _, c := range conns {
		c := c
		g.Go(func() error {
			return c.Close()
		})
	}

	return g.Wait()
}
