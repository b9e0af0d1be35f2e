// Package ws mirrors flushed frames to websocket clients so the controller
// can be developed headless, without strip hardware. It is a one-way
// monitor: clients never inject commands.
package ws

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-lumistrip/internal/render"
)

// FrameMsg is the JSON payload pushed to clients for every flushed frame.
// RGB is the base64 encoding of 3 bytes per strip pixel, full-scale;
// brightness is reported separately so clients can apply it themselves.
type FrameMsg struct {
	Frame      uint64   `json:"frame"`
	N          int      `json:"n"`
	RGB        string   `json:"rgb"`
	Indicator  [3]uint8 `json:"indicator"`
	Brightness uint8    `json:"brightness"`
	Power      string   `json:"power"`
	Mode       string   `json:"mode"`
}

type Monitor struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	frameID uint64
}

func NewMonitor(log zerolog.Logger) *Monitor {
	return &Monitor{
		log:      log,
		clients:  map[*websocket.Conn]bool{},
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler upgrades requests on the monitor endpoint.
func (m *Monitor) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := m.upgrader.Upgrade(w, r, nil)
		if err != nil {
			m.log.Warn().Err(err).Msg("ws upgrade failed")
			return
		}
		m.mu.Lock()
		m.clients[conn] = true
		m.mu.Unlock()
		m.log.Info().Str("remote", r.RemoteAddr).Msg("monitor client connected")

		// Drain (and discard) client messages to notice disconnects.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					m.drop(conn)
					return
				}
			}
		}()
	}
}

func (m *Monitor) drop(conn *websocket.Conn) {
	m.mu.Lock()
	delete(m.clients, conn)
	m.mu.Unlock()
	_ = conn.Close()
}

// Broadcast encodes the frame and sends it to every connected client.
// Clients that fail to keep up are dropped.
func (m *Monitor) Broadcast(pixels []render.Color, indicator render.Color, brightness uint8, power, mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frameID++
	if len(m.clients) == 0 {
		return
	}

	msg := FrameMsg{
		Frame:      m.frameID,
		N:          len(pixels),
		RGB:        base64.StdEncoding.EncodeToString(EncodeRGB(pixels)),
		Indicator:  [3]uint8{indicator.R, indicator.G, indicator.B},
		Brightness: brightness,
		Power:      power,
		Mode:       mode,
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			delete(m.clients, conn)
			_ = conn.Close()
		}
	}
}

// EncodeRGB packs pixels as consecutive R,G,B byte triplets.
func EncodeRGB(pixels []render.Color) []byte {
	out := make([]byte, len(pixels)*3)
	for i, c := range pixels {
		out[i*3+0] = c.R
		out[i*3+1] = c.G
		out[i*3+2] = c.B
	}
	return out
}
