package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ConnectWS accepts text frames holding one or more commands and answers
// every frame with the session or an error object.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, err := g.owned(r)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("session_id", s.ID)
	log.Debug("ws connected")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(
				websocket.CloseUnsupportedData, "text frames only",
			))
			break
		}

		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)

		var reply any
		cmds, err := g.parse(text, s.Snapshot().Side)
		if err == nil {
			snapshot, applyErr := g.apply(r.Context(), s, cmds...)
			if applyErr != nil {
				err = applyErr
			} else {
				reply = NewSessionDTO(snapshot)
			}
		}
		if err != nil {
			log.WithFields(logrus.Fields{
				"command": text,
				"error":   err,
			}).Debug("unable to process command")
			reply = wrapError(err)
		}

		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Error("unable to write json")
			break
		}
		log.Debug("\t< <session data>")
	}
}
