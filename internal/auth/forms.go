package auth

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
)

const (
	homePath          = "/"
	connectionFailure = "Could not connect to the server."
	passwordMismatch  = "Passwords do not match!"
)

type FormsView struct {
	api      scoreapi.API
	onChange func()

	mu    sync.Mutex
	panel Panel
}

func NewFormsView(api scoreapi.API, onChange func()) *FormsView {
	return &FormsView{
		api:      api,
		onChange: onChange,
		panel:    PanelLogin,
	}
}

func (f *FormsView) ShowRegister() {
	f.setPanel(PanelRegister)
}

func (f *FormsView) ShowLogin() {
	f.setPanel(PanelLogin)
}

func (f *FormsView) setPanel(p Panel) {
	f.mu.Lock()
	if f.panel == p {
		f.mu.Unlock()
		return
	}
	f.panel = p
	f.mu.Unlock()
	if f.onChange != nil {
		f.onChange()
	}
}

func (f *FormsView) Snapshot() FormsSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormsSnapshot{Panel: f.panel}
}

func (f *FormsView) SubmitLogin(ctx context.Context, form LoginForm) Outcome {
	err := f.api.Login(ctx, scoreapi.Credentials{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return failure("Login failed", err)
	}
	return Outcome{Redirect: homePath}
}

// SubmitRegister rejects mismatched passwords before contacting the API.
// Only the username and password are sent.
func (f *FormsView) SubmitRegister(ctx context.Context, form RegisterForm) Outcome {
	if form.Password != form.ConfirmPassword {
		return Outcome{Alert: passwordMismatch}
	}
	err := f.api.Register(ctx, scoreapi.Credentials{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return failure("Registration failed", err)
	}
	return Outcome{Redirect: homePath}
}

func failure(prefix string, err error) Outcome {
	if scoreapi.IsTransport(err) {
		log.Println("Network error:", err)
		return Outcome{Alert: connectionFailure}
	}
	msg := scoreapi.ServerMessage(err)
	if msg == "" {
		msg = "Unknown error"
	}
	return Outcome{Alert: fmt.Sprintf("%s: %s", prefix, msg)}
}
