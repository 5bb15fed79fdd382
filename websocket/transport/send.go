package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Conn is the write side of a page's websocket. gorilla connections allow a
// single concurrent writer, so every write goes through ConnMu.
type Conn struct {
	ConnMu sync.Mutex
	ws     *websocket.Conn
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) SendJSON(v interface{}) error {
	c.ConnMu.Lock()
	defer c.ConnMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(v)
}

func (c *Conn) SendText(text string) error {
	c.ConnMu.Lock()
	defer c.ConnMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, []byte(text))
}

func (c *Conn) Close() error {
	c.ConnMu.Lock()
	defer c.ConnMu.Unlock()
	return c.ws.Close()
}
