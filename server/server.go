package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"snake-ai/game"
	"snake-ai/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	clientSend = 16
)

// RoundSource is the part of the round history the server reads
type RoundSource interface {
	Recent(ctx context.Context, limit int) ([]game.Round, error)
	Summary(ctx context.Context) (store.Summary, error)
}

// Options configures a spectator Server
type Options struct {
	Addr       string
	History    RoundSource // optional
	RecordsDir string      // optional; enables /api/rounds/{id}/record
	Logger     *log.Logger
}

// Server publishes game snapshots over HTTP and websocket. Publish and
// OnEvent may be called from the game goroutine while requests are served.
type Server struct {
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	mu      sync.Mutex
	latest  []byte
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		opts:    opts,
		logger:  opts.Logger,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // spectators may connect from any page
			},
		},
	}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the router with every route mounted
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/state", s.getState)
		r.Get("/rounds", s.listRounds)
		r.Get("/rounds/{id}/record", s.getRecord)
	})

	r.Get("/ws", s.handleWebSocket)

	return r
}

// Start serves in the background; listen errors are logged
func (s *Server) Start() {
	go func() {
		s.logger.Printf("Spectator server listening on %s", s.opts.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("Spectator server stopped: %v", err)
		}
	}()
}

// Shutdown stops the listener and disconnects every websocket client
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	s.mu.Lock()
	for c := range s.clients {
		c.conn.Close()
	}
	s.mu.Unlock()

	return err
}

// Publish makes snap the current state and fans it out to websocket clients.
// Slow clients miss frames rather than stall the game.
func (s *Server) Publish(snap game.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Printf("Error encoding snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = data
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// OnEvent publishes the snapshot of every tick and restart
func (s *Server) OnEvent(e game.Event) {
	if e.Type == game.EventTick || e.Type == game.EventRestart {
		s.Publish(e.Snapshot)
	}
}

// Clients returns the number of connected websocket clients
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c.send <- s.latest
	}
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

// handleWebSocket handles GET /ws
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan []byte, clientSend)}
	s.register(c)
	go c.writeLoop()

	// Spectators only listen; reading just detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.unregister(c)
}

func (c *client) writeLoop() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
