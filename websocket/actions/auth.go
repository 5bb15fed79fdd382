package actions

import (
	"github.com/thesrcielos/ArcadeArchive/internal/page"
	"github.com/thesrcielos/ArcadeArchive/websocket/message"
)

func HandleShowRegister(p *page.Page, msg message.Message) error {
	if p.Forms == nil {
		return notOnPage("login form")
	}
	p.Forms.ShowRegister()
	return nil
}

func HandleShowLogin(p *page.Page, msg message.Message) error {
	if p.Forms == nil {
		return notOnPage("login form")
	}
	p.Forms.ShowLogin()
	return nil
}

// The confirmed logout itself is a POST, since it has to hand the cleared
// session cookie back to the browser.
func HandleLogoutOpen(p *page.Page, msg message.Message) error {
	p.Nav.OpenLogout()
	return nil
}

func HandleLogoutCancel(p *page.Page, msg message.Message) error {
	p.Nav.CancelLogout()
	return nil
}
