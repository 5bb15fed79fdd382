package websocket

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/websocket/message"
	"github.com/thesrcielos/ArcadeArchive/websocket/router"
	"github.com/thesrcielos/ArcadeArchive/websocket/transport"
)

const maxMessageSize = 4096

// A page lives as long as its connection: once the browser leaves, the
// page and everything it holds is dropped.
func listenPageMessages(pages *page.Registry, p *page.Page, ws *websocket.Conn, conn *transport.Conn) {
	defer func() {
		log.Printf("Page disconnected: %s", p.ID)
		pages.Unregister(p.ID)
		conn.Close()
	}()

	ws.SetReadLimit(maxMessageSize)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("Error reading message:", err)
			}
			break
		}

		var msg message.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Println("Error decoding message:", err)
			continue
		}

		router.RouteMessage(p, msg)
	}
}
