// Package ws pushes live standings updates to websocket subscribers, one
// room per series.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cardroom/standings/internal/domain/types"
	"github.com/cardroom/standings/pkg/logger"
	"github.com/cardroom/standings/pkg/metrics"
)

// TypeStandingsUpdated tags the message broadcast after every applied
// submission.
const TypeStandingsUpdated = "STANDINGS_UPDATED"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Message is the envelope sent to subscribers.
type Message struct {
	Type     string      `json:"type"`
	SeriesID string      `json:"series_id,omitempty"`
	Payload  interface{} `json:"payload"`
}

// Client is one websocket subscriber bound to a series room.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	series string

	mu     sync.Mutex
	closed bool
}

// Hub tracks subscribers per series and fans standings updates out to them.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool

	logger logger.Logger
}

// NewHub creates a new hub.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]bool),
		logger:     log,
	}
}

// Run processes subscriber registration until ctx is cancelled. Once it
// returns, pending register and unregister sends unblock via the done
// channel instead of hanging on the drained channels.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.series]; !ok {
				h.rooms[client.series] = make(map[*Client]bool)
			}
			h.rooms[client.series][client] = true
			size := len(h.rooms[client.series])
			h.mu.Unlock()

			metrics.WSClientConnected()
			h.logger.Debug(ctx, "ws client joined",
				logger.String("seriesID", client.series),
				logger.Int("roomSize", size),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.series]; ok {
				if room[client] {
					delete(room, client)
					client.shutdown()
					metrics.WSClientDisconnected()
				}
				if len(room) == 0 {
					delete(h.rooms, client.series)
				}
			}
			h.mu.Unlock()
		}
	}
}

// StandingsUpdated broadcasts the fresh standings of a series to its room.
// It satisfies the engine's notifier contract.
func (h *Hub) StandingsUpdated(ctx context.Context, standings types.SeriesStandings) {
	h.broadcast(ctx, standings.SeriesID, Message{
		Type:     TypeStandingsUpdated,
		SeriesID: standings.SeriesID,
		Payload:  standings,
	})
}

func (h *Hub) broadcast(ctx context.Context, seriesID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[seriesID]
	if !ok {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error(ctx, "marshalling ws message", logger.Error(err))
		return
	}

	for client := range room {
		client.mu.Lock()
		if client.closed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Slow consumer; drop the update rather than block the engine.
			h.logger.Warn(ctx, "ws client send buffer full, dropping update",
				logger.String("seriesID", seriesID),
			)
		}
		client.mu.Unlock()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for client := range room {
			client.shutdown()
		}
	}
	h.rooms = make(map[string]map[*Client]bool)
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Subscribers are read-only; inbound frames only keep the connection
	// alive.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
