// Package web mirrors the pad grid to browsers over websockets and accepts
// presses back from them.
package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-silopad/internal/diagnostics"
	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

const (
	writeWait = 200 * time.Millisecond
	// sendBuffer bounds the messages queued per client; a client that falls
	// further behind loses messages instead of stalling the caller.
	sendBuffer = 16
)

// client is a streaming connection with its own writer goroutine.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) pump() {
	defer c.conn.Close()
	for b := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("web: write")
			return
		}
	}
}

// offer queues b without blocking.
func (c *client) offer(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

type Server struct {
	// Driver names the primary panel in topology and health replies.
	Driver string
	Page   layout.Page

	mu          sync.RWMutex
	buf         panel.Buffer
	events      *panel.Queue
	rgb         []byte
	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]*client
	diagClients map[*websocket.Conn]*client
	up          websocket.Upgrader
}

func New(driver string, page layout.Page) *Server {
	return &Server{
		Driver:      driver,
		Page:        page,
		events:      panel.NewQueue(64),
		rgb:         make([]byte, layout.Size*layout.Size*3),
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]*client{},
		diagClients: map[*websocket.Conn]*client{},
		up:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Routes registers the websocket and health endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
}

func (s *Server) Poll() (panel.Event, bool) { return s.events.Poll() }

func (s *Server) SetPixel(x, y int, c palette.RGB) { s.buf.Set(x, y, c) }

// Sync broadcasts the grid when any pad changed since the last call.
func (s *Server) Sync() error {
	n := s.buf.Flush(func(x, y int, c palette.RGB) {
		i := (y*layout.Size + x) * 3
		s.mu.Lock()
		s.rgb[i], s.rgb[i+1], s.rgb[i+2] = c.R, c.G, c.B
		s.mu.Unlock()
	})
	if n == 0 {
		return nil
	}
	s.mu.Lock()
	s.frameID++
	s.mu.Unlock()
	s.broadcastFrame()
	return nil
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		close(c.send)
	}
	for _, c := range s.diagClients {
		close(c.send)
	}
	s.clients = map[*websocket.Conn]*client{}
	s.diagClients = map[*websocket.Conn]*client{}
	return nil
}

func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := s.attach(conn, false, s.topologyJSON(), s.frameJSON())
	go s.drain(c, false)
}

func (s *Server) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	hello, _ := json.Marshal(diag.New(diag.Info, "DIAG.HELLO", "diagnostics attached"))
	c := s.attach(conn, true, hello)
	go s.drain(c, true)
}

// attach registers conn with the greeting already queued and starts its
// writer.
func (s *Server) attach(conn *websocket.Conn, diagOnly bool, greet ...[]byte) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	for _, b := range greet {
		c.offer(b)
	}
	s.mu.Lock()
	s.set(diagOnly)[conn] = c
	s.mu.Unlock()
	go c.pump()
	return c
}

func (s *Server) set(diagOnly bool) map[*websocket.Conn]*client {
	if diagOnly {
		return s.diagClients
	}
	return s.clients
}

// drain discards client messages until the connection drops.
func (s *Server) drain(c *client, diagOnly bool) {
	defer func() {
		s.mu.Lock()
		set := s.set(diagOnly)
		if set[c.conn] == c {
			delete(set, c.conn)
			close(c.send)
		}
		s.mu.Unlock()
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

type controlMsg struct {
	Press []int `json:"press,omitempty"`
}

type controlAck struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg controlMsg
		var ack controlAck
		if err := json.Unmarshal(data, &msg); err != nil {
			ack = controlAck{Error: "bad json"}
		} else {
			ack = s.applyControl(msg)
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ack); err != nil {
			return
		}
	}
}

func (s *Server) applyControl(msg controlMsg) controlAck {
	if msg.Press == nil {
		return controlAck{Error: "no press"}
	}
	if len(msg.Press) != 2 || !panel.InGrid(msg.Press[0], msg.Press[1]) {
		d := diag.New(diag.Warn, "CONTROL.RANGE", "press outside the grid")
		d.Evidence = map[string]any{"press": msg.Press}
		s.PushDiag(d)
		return controlAck{Error: "press outside the grid"}
	}
	if !s.events.Press(msg.Press[0], msg.Press[1]) {
		return controlAck{Error: "input queue full"}
	}
	return controlAck{OK: true}
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"count":    layout.Size * layout.Size,
		"clients":  len(s.clients),
		"driver":   s.Driver,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) topologyJSON() []byte {
	b, _ := json.Marshal(map[string]any{
		"size":   layout.Size,
		"page":   s.Page,
		"driver": s.Driver,
	})
	return b
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

func (s *Server) frameJSON() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: s.frameID, RGB: s.rgb})
	return b
}

func (s *Server) broadcastFrame() {
	if n := s.broadcast(false, s.frameJSON()); n > 0 {
		log.Debug().Int("clients", n).Msg("web: frame dropped for slow clients")
	}
}

// PushDiag sends d to every diagnostics client.
func (s *Server) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.broadcast(true, b)
}

// broadcast queues b on every client of the set and reports how many were
// too far behind to take it.
func (s *Server) broadcast(diagOnly bool, b []byte) (dropped int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.set(diagOnly) {
		if !c.offer(b) {
			dropped++
		}
	}
	return dropped
}
