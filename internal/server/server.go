package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/game"
)

// Server owns the WebSocket connections and fans game events out to them.
// It implements game.Emitter; all game logic lives in the session.
type Server struct {
	addr        string
	publicURL   string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	session     *game.Session
}

// NewServer creates a new WebSocket server bound to addr. publicURL is the
// address phones should open; it feeds the /join QR code.
func NewServer(addr, publicURL string, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Party game on a LAN: players join from phones with
				// arbitrary origins.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		publicURL:   publicURL,
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetSession wires the game session into the server.
func (s *Server) SetSession(session *game.Session) {
	s.session = session
}

// Start runs the connection loop and serves HTTP. It blocks.
func (s *Server) Start() error {
	go s.run()

	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/ws", s.handleWebSocket)
	router.HandlerFunc(http.MethodGet, "/health", s.handleHealth)
	router.HandlerFunc(http.MethodGet, "/stats", s.handleStats)
	router.HandlerFunc(http.MethodGet, "/join", s.handleJoinQR)

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	return http.ListenAndServe(s.addr, router)
}

// Stop stops the WebSocket server
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			delete(s.connections, conn)
			total := len(s.connections)
			s.mu.Unlock()

			// The player stays in the game; only the connection detaches.
			if name := conn.GetPlayer(); name != "" && s.session != nil {
				s.session.MarkDetached(name)
			}
			_ = conn.Close()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// Broadcast implements game.Emitter: one game event to every connection.
// The payload is marshalled here, while the session lock is still held, so
// every client sees the same snapshot.
func (s *Server) Broadcast(e game.Event) {
	msg, err := messageFromEvent(e)
	if err != nil {
		s.logger.Error("Failed to encode event", "type", e.Type, "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send event to client", "error", err, "player", conn.GetPlayer())
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.session)
	s.register <- client
	client.Start()

	// New connections immediately get the full current view, so a page
	// refresh mid-game comes back consistent.
	client.replayState()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleStats reports headline game numbers as plain text.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		http.Error(w, "no session", http.StatusServiceUnavailable)
		return
	}

	stats := s.session.Snapshot()
	s.mu.RLock()
	conns := len(s.connections)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Phase: %s\n", stats.Phase)
	fmt.Fprintf(w, "Round: %d\n", stats.Round)
	fmt.Fprintf(w, "Players: %d (%d connected)\n", stats.Players, stats.Connected)
	fmt.Fprintf(w, "Banked total: %d\n", stats.BankedTotal)
	fmt.Fprintf(w, "Connections: %d\n", conns)
}

// handleJoinQR serves a QR code PNG pointing phones at the game URL.
func (s *Server) handleJoinQR(w http.ResponseWriter, r *http.Request) {
	url := s.publicURL
	if url == "" {
		url = "http://" + r.Host + "/"
	}

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		s.logger.Error("Failed to encode join QR", "error", err)
		http.Error(w, "qr encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ConnectionCount returns the number of live connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}
