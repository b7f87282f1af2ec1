package net

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/mirror"
	"github.com/bloeys/cellmatrix/screen"
)

func newTestScreen() (*screen.Screen, error) {
	dims := cells.Area{Lines: 2, Span: 2}
	return screen.New(dims, make([]cells.Cell, dims.Volume()))
}

func TestHealthzReportsOK(t *testing.T) {
	s := NewServer(newTestScreen, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMirrorHandshakeSendsUUIDAndDeviceWorks(t *testing.T) {
	connected := make(chan *mirror.Device, 1)
	s := NewServer(newTestScreen, func(dev *mirror.Device, conn *Conn) {
		connected <- dev
	})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/mirror"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ws.Close()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msgType != websocket.TextMessage {
		t.Fatalf("handshake message type = %d, want TextMessage", msgType)
	}
	if len(data) != 36 {
		t.Fatalf("handshake payload %q does not look like a UUID", data)
	}

	select {
	case dev := <-connected:
		if dev == nil {
			t.Fatalf("onConnect received nil device")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("onConnect was never called")
	}
}
