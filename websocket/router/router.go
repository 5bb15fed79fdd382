package router

import (
	"errors"
	"log"

	"github.com/thesrcielos/ArcadeArchive/internal/apperrors"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/websocket/actions"
	"github.com/thesrcielos/ArcadeArchive/websocket/message"
)

var handlers = map[string]func(p *page.Page, msg message.Message) error{
	"TAB":           actions.HandleTab,
	"SORT":          actions.HandleSort,
	"TOGGLE_ALL":    actions.HandleToggleAll,
	"PLAY":          actions.HandlePlay,
	"CLOSE_DIALOG":  actions.HandleCloseDialog,
	"SHOW_REGISTER": actions.HandleShowRegister,
	"SHOW_LOGIN":    actions.HandleShowLogin,
	"LOGOUT_OPEN":   actions.HandleLogoutOpen,
	"LOGOUT_CANCEL": actions.HandleLogoutCancel,
}

// RouteMessage runs the action named by msg against p. A failed action is
// reported back to the page as an ERROR message; unknown types are dropped.
func RouteMessage(p *page.Page, msg message.Message) {
	handler, ok := handlers[msg.Type]
	if !ok {
		log.Println("Unknown message type:", msg.Type)
		return
	}
	if err := handler(p, msg); err != nil {
		log.Printf("Action %s failed on page %s: %v", msg.Type, p.ID, err)
		reportError(p, msg.Type, err)
	}
}

func reportError(p *page.Page, msgType string, err error) {
	text := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		text = appErr.Message
	}
	p.Notify(page.OutgoingMessage{
		Type:    "ERROR",
		Payload: message.ErrorPayload{Type: msgType, Message: text},
	})
}
