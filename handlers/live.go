// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/livepoll/bridge"
	"github.com/danielhkuo/livepoll/cliparse"
)

// LiveHandler upgrades HTTP requests into live connections on the hub.
type LiveHandler struct {
	hub      *bridge.Hub
	upgrader websocket.Upgrader
}

func NewLiveHandler(hub *bridge.Hub, cfg cliparse.Config) *LiveHandler {
	origins := strings.Split(cfg.CORSOrigin, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range origins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// Serve handles GET /live
func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		slog.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	bridge.ServeConn(h.hub, ws)
}
