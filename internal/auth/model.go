package auth

type Panel string

const (
	PanelLogin    Panel = "login"
	PanelRegister Panel = "register"
)

type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RegisterForm struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm-password" form:"confirm-password"`
}

// Outcome tells the browser what to do after a form or logout submission.
type Outcome struct {
	Redirect string `json:"redirect,omitempty"`
	Reload   bool   `json:"reload,omitempty"`
	Alert    string `json:"alert,omitempty"`
}

type FormsSnapshot struct {
	Panel Panel `json:"panel"`
}

type NavSnapshot struct {
	LoggedIn    bool `json:"loggedIn"`
	ConfirmOpen bool `json:"confirmOpen"`
}
