package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pefman/pokedex-duel/internal/models"
)

const (
	wsWriteWait = 10 * time.Second
	wsIdle      = 5 * time.Minute
)

type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || originAllowed(s.origins, origin)
	}}
}

// GET /ws/battle
//
// Each {"type":"battle","data":{"a":..,"b":..}} message gets one
// {"type":"result"} or {"type":"error"} reply.
func (s *Server) battleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		s.log.Warn("ws upgrade", "error", err)
		return
	}
	defer conn.Close()
	s.log.Debug("ws connect", "remote", r.RemoteAddr)

	send := func(m models.WsMsg) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(m)
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdle))
		var in clientIn
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("ws read", "error", err)
			}
			return
		}
		var reply models.WsMsg
		switch in.Type {
		case "battle":
			var req battleRequest
			if err := json.Unmarshal(in.Data, &req); err != nil {
				reply = models.WsMsg{Type: "error", Data: "invalid battle payload"}
				break
			}
			out, err := s.battle(r.Context(), req)
			if err != nil {
				s.log.Error("ws battle", "error", err)
				reply = models.WsMsg{Type: "error", Data: "Error fetching Pokémon details"}
				break
			}
			reply = models.WsMsg{Type: "result", Data: out}
		case "ping":
			reply = models.WsMsg{Type: "pong"}
		default:
			reply = models.WsMsg{Type: "error", Data: "unknown message type " + in.Type}
		}
		if err := send(reply); err != nil {
			s.log.Warn("ws write", "error", err)
			return
		}
	}
}
