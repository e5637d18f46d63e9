package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/middlewares"
	"github.com/yeremiapane/restaurant-billing/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: sameHostOrigin,
}

// sameHostOrigin -> hanya halaman dari host server ini (atau client non-browser)
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

type DisplayController struct {
	Hub     *display.Hub
	Session *CartSession
}

func NewDisplayController(hub *display.Hub, session *CartSession) *DisplayController {
	return &DisplayController{Hub: hub, Session: session}
}

// DisplayHandler -> endpoint WebSocket untuk layar kasir
func (dc *DisplayController) DisplayHandler(c *gin.Context) {
	role := c.GetString(middlewares.ContextRole)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Warnf("Display upgrade failed: %v", err)
		return
	}

	// state awal dikirim sebelum client masuk hub
	if err := ws.WriteJSON(display.Message{Event: display.EventCartUpdate, Data: dc.Session.Snapshot()}); err != nil {
		ws.Close()
		return
	}

	dc.Hub.Register(ws, role)
	utils.InfoLogger.Printf("Display connected (%s), clients=%d", role, dc.Hub.ClientCount())

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	dc.Hub.Unregister(ws)
}
