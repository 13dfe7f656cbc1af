package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// demo backend, same posture as the CORS config: any origin may connect
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection. Outbound frames are queued on Send;
// inbound frames are either subscription management or dispatched actions.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	dispatcher *Dispatcher

	Send chan []byte
}

// ServeWS upgrades the request and starts the read/write pumps.
func ServeWS(hub *Hub, dispatcher *Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("❌ realtime: upgrade failed: %v", err)
			return
		}

		client := &Client{
			hub:        hub,
			conn:       conn,
			dispatcher: dispatcher,
			Send:       make(chan []byte, 256),
		}
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("⚠️ realtime: read error: %v", err)
			}
			return
		}

		var frame InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("⚠️ realtime: malformed frame dropped: %v", err)
			continue
		}

		switch frame.Action {
		case "subscribe", "unsubscribe":
			var sub subscribePayload
			if err := json.Unmarshal(frame.Payload, &sub); err != nil || sub.Destination == "" {
				continue
			}
			if frame.Action == "subscribe" {
				c.hub.subscribe <- subscription{Client: c, Destination: sub.Destination}
			} else {
				c.hub.unsubscribe <- subscription{Client: c, Destination: sub.Destination}
			}
		default:
			c.dispatcher.Dispatch(frame.Action, frame.Payload)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
