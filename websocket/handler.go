package websocket

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/websocket/transport"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

// NewHandler connects a loaded page to its browser. The page is named by the
// token embedded in the document it was rendered into.
func NewHandler(pages *page.Registry, secret []byte) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageID, err := page.ParseToken(secret, c.QueryParam("token"))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		p := pages.Get(pageID)
		if p == nil {
			return echo.NewHTTPError(http.StatusNotFound, "page not found")
		}

		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return err
		}
		conn := transport.NewConn(ws)

		if err := p.Attach(conn); err != nil {
			conn.SendText("Page already connected")
			conn.Close()
			log.Printf("Refused second connection for page %s", pageID)
			return nil
		}
		log.Printf("Page connected: %s (%s)", pageID, p.Kind)
		go listenPageMessages(pages, p, ws, conn)

		return nil
	}
}
