package voice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// DefaultBufferSize is the number of parsed commands held for the game.
const DefaultBufferSize = 8

const (
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
	maxFrameSize = 4 << 10
)

// Reply is sent back on the socket for every text frame.
type Reply struct {
	Command string `json:"command,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Server accepts transcribed speech over a WebSocket at /voice and queues
// the parsed commands for the game loop.
type Server struct {
	addr     string
	logger   *log.Logger
	upgrader websocket.Upgrader
	commands chan Command

	mu      sync.Mutex
	srv     *http.Server
	dropped int
}

// NewServer creates a voice server listening on addr. A nil logger
// discards log output.
func NewServer(addr string, logger *log.Logger, bufferSize int) *Server {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		addr:   addr,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Recognizers run locally and are not browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		commands: make(chan Command, bufferSize),
	}
}

// Commands returns the channel parsed commands are delivered on.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// Dropped returns how many commands were discarded because the game fell
// behind.
func (s *Server) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Publish queues a command, discarding the oldest queued one when full.
func (s *Server) Publish(c Command) {
	for {
		select {
		case s.commands <- c:
			return
		default:
		}

		select {
		case <-s.commands:
			s.mu.Lock()
			s.dropped++
			s.mu.Unlock()
		default:
		}
	}
}

// Handler returns the HTTP handler serving the /voice endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/voice", s.handleVoice)
	return mux
}

// ListenAndServe serves until ctx is cancelled or Shutdown is called.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.logger.Info("Voice input listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Voice upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("Voice client connected", "remote", r.RemoteAddr)

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	var writeMu sync.Mutex
	write := func(msgType int, data []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(msgType, data)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := write(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Voice client read failed", "error", err)
			}
			s.logger.Info("Voice client disconnected", "remote", r.RemoteAddr)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := Reply{Error: "unrecognized"}
		if c, ok := Parse(phrase(msg)); ok {
			s.Publish(c)
			reply = Reply{Command: c.String()}
			s.logger.Debug("Voice command", "command", c)
		}

		data, _ := json.Marshal(reply)
		if err := write(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// phrase extracts the transcribed text from a frame, which is either the
// raw phrase or a JSON object with a "text" field.
func phrase(msg []byte) string {
	trimmed := strings.TrimSpace(string(msg))
	if strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
			return payload.Text
		}
	}
	return trimmed
}
