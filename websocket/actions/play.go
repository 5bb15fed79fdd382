package actions

import (
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/websocket/message"
)

func HandlePlay(p *page.Page, msg message.Message) error {
	if p.Game == nil {
		return notOnPage("game")
	}
	return p.Game.Play(p.Context())
}

func HandleCloseDialog(p *page.Page, msg message.Message) error {
	if p.Game == nil {
		return notOnPage("game")
	}
	p.Game.CloseDialog()
	return nil
}
