package api

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/pidfan/internal/controller"
	"github.com/markusressel/pidfan/internal/ui"
)

const (
	streamBufferSize = 16
	pingInterval     = 30 * time.Second
	writeTimeout     = 10 * time.Second
	readTimeout      = 60 * time.Second
)

// Stream pushes every CycleResult to all connected websocket clients.
// Clients are read-only, incoming messages are discarded.
type Stream struct {
	logger   ui.Logger
	upgrader websocket.Upgrader

	nextId  int64
	mu      sync.RWMutex
	clients map[int64]*streamClient
}

type streamClient struct {
	id     int64
	conn   *websocket.Conn
	sendCh chan controller.CycleResult
	done   chan struct{}
	once   sync.Once
}

func NewStream(logger ui.Logger) *Stream {
	return &Stream{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: map[int64]*streamClient{},
	}
}

// OnCycle implements controller.CycleObserver, it never blocks
func (s *Stream) OnCycle(result controller.CycleResult) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.clients {
		select {
		case client.sendCh <- result:
		default:
			s.logger.Debug("Dropping cycle for websocket client %d (buffer full)", client.id)
		}
	}
}

// ClientCount returns the number of connected clients
func (s *Stream) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Stream) handleWebsocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warning("Websocket upgrade failed: %v", err)
		return nil
	}

	client := &streamClient{
		id:     atomic.AddInt64(&s.nextId, 1),
		conn:   conn,
		sendCh: make(chan controller.CycleResult, streamBufferSize),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[client.id] = client
	s.mu.Unlock()
	s.logger.Debug("Websocket client %d connected", client.id)

	go s.writePump(client)
	s.readPump(client)
	return nil
}

func (s *Stream) removeClient(client *streamClient) {
	s.mu.Lock()
	delete(s.clients, client.id)
	s.mu.Unlock()

	client.once.Do(func() {
		close(client.done)
		_ = client.conn.Close()
	})
}

// readPump only exists to notice the client going away
func (s *Stream) readPump(client *streamClient) {
	defer s.removeClient(client)

	client.conn.SetReadLimit(512)
	_ = client.conn.SetReadDeadline(time.Now().Add(readTimeout))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, _, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Debug("Websocket client %d read error: %v", client.id, err)
			}
			return
		}
	}
}

func (s *Stream) writePump(client *streamClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.removeClient(client)
	}()

	for {
		select {
		case result := <-client.sendCh:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := client.conn.WriteJSON(result); err != nil {
				s.logger.Debug("Websocket client %d write error: %v", client.id, err)
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.done:
			return
		}
	}
}
