package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chris/campaign-escrow/pkg/events"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

type connection struct {
	conn Conn
	send chan []byte
	once sync.Once
}

func (c *connection) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans lifecycle events out to every connected websocket client.
// A client that falls behind by more than its send buffer is dropped.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*connection
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		conns:  make(map[string]*connection),
		logger: logger,
	}
}

// Make sure we conform to the interfaces
var (
	_ ConnectionManager = (*Hub)(nil)
	_ Publisher         = (*Hub)(nil)
	_ events.Notifier   = (*Hub)(nil)
)

// AddConnection registers conn and starts its writer.
func (h *Hub) AddConnection(ctx context.Context, connectionID string, conn Conn) error {
	c := &connection{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if _, exists := h.conns[connectionID]; exists {
		h.mu.Unlock()
		return fmt.Errorf("connection %s already registered", connectionID)
	}
	h.conns[connectionID] = c
	h.mu.Unlock()

	h.wg.Add(1)
	go h.writePump(connectionID, c)
	return nil
}

// RemoveConnection stops the writer of a connection. Unknown ids are ignored.
func (h *Hub) RemoveConnection(ctx context.Context, connectionID string) error {
	h.mu.Lock()
	c, ok := h.conns[connectionID]
	delete(h.conns, connectionID)
	h.mu.Unlock()

	if ok {
		c.close()
	}
	return nil
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Publish queues message for every connection.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	var stale []string
	h.mu.RLock()
	for id, c := range h.conns {
		select {
		case c.send <- payload:
		default:
			stale = append(stale, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range stale {
		h.logger.Info("slow connection found, dropping", "connectionId", id)
		_ = h.RemoveConnection(ctx, id)
	}
	return nil
}

// Notify publishes a lifecycle event.
func (h *Hub) Notify(ctx context.Context, ev events.Event) error {
	return h.Publish(ctx, Message{Type: MessageTypeCampaignEvent, Payload: ev})
}

// Close drops every connection and waits for the writers to exit.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]*connection)
	h.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
	h.wg.Wait()
}

func (h *Hub) writePump(connectionID string, c *connection) {
	defer h.wg.Done()
	defer c.conn.Close()

	for payload := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			h.logger.Error("failed to set write deadline", "connectionId", connectionID, "error", err)
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Error("failed to post to connection", "connectionId", connectionID, "error", err)
			_ = h.RemoveConnection(context.Background(), connectionID)
			// drain until RemoveConnection's close ends the loop
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
