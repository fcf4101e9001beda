// handlers/ws.go
package handlers

import (
	"divinetemple/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade rejects plain HTTP requests on the websocket route.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationSocket keeps a connection registered with the hub for the
// lifetime of its read loop. Unlock and purchase toasts are pushed from
// the engines; inbound frames are ignored.
func NotificationSocket(hub *notify.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, ok := socketUserID(c)
		if !ok {
			// Guests have nothing to receive
			_ = c.Close()
			return
		}

		hub.Register(userID, c)
		defer func() {
			hub.Unregister(userID, c)
			_ = c.Close()
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func socketUserID(c *websocket.Conn) (uint, bool) {
	switch v := c.Locals("userId").(type) {
	case float64:
		return uint(v), true
	case uint:
		return v, true
	default:
		return 0, false
	}
}
