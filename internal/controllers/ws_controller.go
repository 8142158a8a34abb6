package controllers

import (
	"meetsync/internal/broadcast"
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/structures"
	"net/http"
	"slices"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const maxInboundMessageSize = 4096

type WsController struct {
	logger      providers.Logger
	broadcaster *broadcast.Broadcaster
	conf        structures.BroadcastConfig
	upgrader    websocket.Upgrader
}

func NewWsController(conf *structures.Config, logger providers.Logger, broadcaster *broadcast.Broadcaster) *WsController {
	wc := &WsController{
		logger:      logger,
		broadcaster: broadcaster,
		conf:        conf.Broadcast,
	}
	wc.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     wc.checkOrigin,
	}
	return wc
}

func (wc *WsController) checkOrigin(r *http.Request) bool {
	if len(wc.conf.AllowedOrigin) == 0 || slices.Contains(wc.conf.AllowedOrigin, "*") {
		return true
	}
	return slices.Contains(wc.conf.AllowedOrigin, r.Header.Get("Origin"))
}

// Serve upgrades the connection and reads control messages until the
// client goes away. join_group moves the connection to the named group and
// is acknowledged with group_joined.
func (wc *WsController) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := wc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		wc.logger.Warnf(providers.TypeWs, "Upgrade failed from %s: %s", r.RemoteAddr, err)
		return
	}

	l := broadcast.NewWsListener(conn, wc.conf.SendQueue, wc.conf.WriteTimeout, wc.conf.PingInterval)
	go l.WritePump()
	wc.logger.Debugf(providers.TypeWs, "Listener %s connected from %s", l.ID(), r.RemoteAddr)
	defer func() {
		wc.broadcaster.Unsubscribe(l)
		l.Close()
		wc.logger.Debugf(providers.TypeWs, "Listener %s disconnected", l.ID())
	}()

	conn.SetReadLimit(maxInboundMessageSize)
	if wc.conf.PingInterval > 0 {
		pongWait := 2 * wc.conf.PingInterval
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg models.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			wc.logger.Debugf(providers.TypeWs, "Listener %s sent malformed message: %s", l.ID(), err)
			continue
		}
		switch msg.Type {
		case models.MessageJoinGroup:
			if msg.GroupID == "" {
				continue
			}
			wc.broadcaster.Subscribe(l, msg.GroupID)
			ack, err := json.Marshal(models.NewGroupJoined(msg.GroupID))
			if err != nil {
				continue
			}
			_ = l.Send(ack)
		default:
			wc.logger.Debugf(providers.TypeWs, "Listener %s sent unknown message type %q", l.ID(), msg.Type)
		}
	}
}
