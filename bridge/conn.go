// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/livepoll/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 25 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

// Conn is one live WebSocket connection. The read pump feeds join/leave
// requests to the hub; the write pump drains a buffered send channel so a
// slow client never blocks the hub's delivery path.
type Conn struct {
	id   string
	hub  *Hub
	ws   *websocket.Conn
	send chan models.Event
	stop chan struct{}
}

// ServeConn registers the websocket with the hub and runs its pumps. It
// returns when the connection is gone; the caller owns the HTTP goroutine.
func ServeConn(hub *Hub, ws *websocket.Conn) {
	c := &Conn{
		id:   uuid.NewString(),
		hub:  hub,
		ws:   ws,
		send: make(chan models.Event, sendBuffer),
		stop: make(chan struct{}),
	}

	hub.Register(c)
	slog.Debug("client connected", "conn_id", c.id)

	go c.writePump()
	c.readPump()
}

func (c *Conn) ID() string {
	return c.id
}

// Send queues an event for delivery, dropping it if the client is too far
// behind. State snapshots are idempotent, so a dropped frame is corrected
// by the next one.
func (c *Conn) Send(ev models.Event) {
	select {
	case c.send <- ev:
	default:
		slog.Debug("dropping event for slow client", "conn_id", c.id, "type", ev.Type)
	}
}

// Close tears the connection down. Called by the hub during shutdown.
func (c *Conn) Close() {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
}

func (c *Conn) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
		c.ws.Close()
		slog.Debug("client disconnected", "conn_id", c.id)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg models.ClientMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "conn_id", c.id, "error", err)
			}
			return
		}

		switch msg.Type {
		case models.MessageJoinPoll:
			c.hub.Join(c, msg.PollID)
		case models.MessageLeavePoll:
			c.hub.Leave(c, msg.PollID)
		default:
			// Unknown client message types are ignored, not errors.
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.stop:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}
