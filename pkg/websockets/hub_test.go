package websockets_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wshandler "github.com/chris/campaign-escrow/pkg/handlers/websockets"
	"github.com/chris/campaign-escrow/pkg/events"
	"github.com/chris/campaign-escrow/pkg/websockets"
)

// fakeConn records writes and can be made to fail.
type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
	fail    bool
	closed  bool
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	if messageType == websocket.TextMessage {
		c.written = append(c.written, data)
	}
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.written)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHubFanOut(t *testing.T) {
	hub := websockets.NewHub(nil)
	defer hub.Close()
	ctx := context.Background()

	a, b := &fakeConn{}, &fakeConn{}
	require.NoError(t, hub.AddConnection(ctx, "a", a))
	require.NoError(t, hub.AddConnection(ctx, "b", b))
	assert.Error(t, hub.AddConnection(ctx, "a", &fakeConn{}))
	assert.Equal(t, 2, hub.Len())

	ev := events.New(events.CampaignCreated, 4, time.Now())
	require.NoError(t, hub.Notify(ctx, ev))

	assert.Eventually(t, func() bool { return a.messages() == 1 && b.messages() == 1 }, time.Second, 5*time.Millisecond)

	var msg struct {
		Type    websockets.MessageType `json:"type"`
		Payload events.Event           `json:"payload"`
	}
	a.mu.Lock()
	require.NoError(t, json.Unmarshal(a.written[0], &msg))
	a.mu.Unlock()
	assert.Equal(t, websockets.MessageTypeCampaignEvent, msg.Type)
	assert.Equal(t, ev.Id, msg.Payload.Id)
}

func TestHubDropsBrokenConnection(t *testing.T) {
	hub := websockets.NewHub(nil)
	defer hub.Close()
	ctx := context.Background()

	broken := &fakeConn{fail: true}
	require.NoError(t, hub.AddConnection(ctx, "broken", broken))
	require.NoError(t, hub.Notify(ctx, events.New(events.CampaignCancelled, 1, time.Now())))

	assert.Eventually(t, func() bool { return hub.Len() == 0 && broken.isClosed() }, time.Second, 5*time.Millisecond)
	assert.NoError(t, hub.RemoveConnection(ctx, "broken"))
}

func TestHandlerServesEvents(t *testing.T) {
	hub := websockets.NewHub(nil)
	defer hub.Close()

	srv := httptest.NewServer(wshandler.NewHandler(hub))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	ev := events.New(events.CampaignFinalized, 9, time.Now())
	require.NoError(t, hub.Notify(context.Background(), ev))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), ev.Id)

	require.NoError(t, client.Close())
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}
