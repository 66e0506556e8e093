// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import (
	"log/slog"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/models"
)

// session is one live connection from the hub's point of view. Send must
// never block; a session that cannot keep up drops events rather than
// stalling the delivery path.
type session interface {
	ID() string
	Send(ev models.Event)
	Close()
}

type cmdKind int

const (
	cmdRegister cmdKind = iota
	cmdUnregister
	cmdJoin
	cmdLeave
	cmdBroadcast
	cmdShutdown
)

type command struct {
	kind   cmdKind
	sess   session
	pollID string
	event  models.Event
}

// Hub tracks which live connection is interested in which poll. All state is
// owned by a single goroutine fed through a command channel, no mutexes.
// Each connection is in at most one poll room; joining another room
// implicitly leaves the previous one.
type Hub struct {
	commands chan command
	done     chan struct{}

	// owned by the Run goroutine
	sessions map[string]session // connection ID → session
	rooms    map[string]map[string]session
	current  map[string]string // connection ID → joined poll ID
}

func NewHub() *Hub {
	return &Hub{
		commands: make(chan command),
		done:     make(chan struct{}),
		sessions: make(map[string]session),
		rooms:    make(map[string]map[string]session),
		current:  make(map[string]string),
	}
}

// Run processes commands until Shutdown. Must be started exactly once.
func (h *Hub) Run() {
	for cmd := range h.commands {
		switch cmd.kind {
		case cmdRegister:
			h.sessions[cmd.sess.ID()] = cmd.sess
		case cmdUnregister:
			h.drop(cmd.sess.ID())
		case cmdJoin:
			h.join(cmd.sess, cmd.pollID)
		case cmdLeave:
			h.leave(cmd.sess.ID(), cmd.pollID)
		case cmdBroadcast:
			for _, sess := range h.rooms[cmd.pollID] {
				sess.Send(cmd.event)
			}
		case cmdShutdown:
			for _, sess := range h.sessions {
				sess.Close()
			}
			close(h.done)
			return
		}
	}
}

func (h *Hub) join(sess session, pollID string) {
	id := sess.ID()
	if _, ok := h.sessions[id]; !ok {
		return
	}

	// Leave any previously joined room
	if prev, ok := h.current[id]; ok && prev != pollID {
		h.leave(id, prev)
	}

	room := h.rooms[pollID]
	if room == nil {
		room = make(map[string]session)
		h.rooms[pollID] = room
	}
	room[id] = sess
	h.current[id] = pollID
	slog.Debug("client joined poll", "conn_id", id, "poll_id", pollID)
}

func (h *Hub) leave(connID, pollID string) {
	if room, ok := h.rooms[pollID]; ok {
		delete(room, connID)
		if len(room) == 0 {
			delete(h.rooms, pollID)
		}
	}
	if h.current[connID] == pollID {
		delete(h.current, connID)
	}
}

func (h *Hub) drop(connID string) {
	if pollID, ok := h.current[connID]; ok {
		h.leave(connID, pollID)
	}
	delete(h.sessions, connID)
}

// send enqueues a command unless the hub has already shut down.
func (h *Hub) send(cmd command) {
	select {
	case h.commands <- cmd:
	case <-h.done:
	}
}

// Register adds a live connection.
func (h *Hub) Register(sess session) {
	h.send(command{kind: cmdRegister, sess: sess})
}

// Unregister removes a connection and drops its room membership.
func (h *Hub) Unregister(sess session) {
	h.send(command{kind: cmdUnregister, sess: sess})
}

// Join puts the connection into pollID's room, leaving any previous room.
// A malformed poll ID is reported back to the requesting connection only;
// the join itself is ignored.
func (h *Hub) Join(sess session, pollID string) {
	if !auth.ValidID(pollID) {
		sess.Send(models.Event{Type: models.EventError, Data: "invalid poll ID"})
		return
	}
	h.send(command{kind: cmdJoin, sess: sess, pollID: pollID})
}

// Leave removes the connection from pollID's room. Malformed IDs are
// silently ignored.
func (h *Hub) Leave(sess session, pollID string) {
	if !auth.ValidID(pollID) {
		return
	}
	h.send(command{kind: cmdLeave, sess: sess, pollID: pollID})
}

// Broadcast delivers an event to every connection in pollID's room.
func (h *Hub) Broadcast(pollID string, ev models.Event) {
	h.send(command{kind: cmdBroadcast, pollID: pollID, event: ev})
}

// Shutdown stops accepting commands and closes every live connection.
func (h *Hub) Shutdown() {
	h.send(command{kind: cmdShutdown})
	<-h.done
}
