package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
)

func TestFormsView_Toggle(t *testing.T) {
	changes := 0
	f := NewFormsView(&scoreapi.APIMock{}, func() { changes++ })
	assert.Equal(t, PanelLogin, f.Snapshot().Panel)

	f.ShowRegister()
	assert.Equal(t, PanelRegister, f.Snapshot().Panel)
	f.ShowRegister()
	f.ShowLogin()
	assert.Equal(t, PanelLogin, f.Snapshot().Panel)
	assert.Equal(t, 2, changes)
}

func TestFormsView_SubmitLogin_Success(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Login", mock.Anything, scoreapi.Credentials{Username: "foo", Password: "bar"}).Return(nil).Once()
	f := NewFormsView(api, nil)

	out := f.SubmitLogin(context.Background(), LoginForm{Username: "foo", Password: "bar"})
	assert.Equal(t, Outcome{Redirect: "/"}, out)
	api.AssertExpectations(t)
}

func TestFormsView_SubmitLogin_ServerError(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Login", mock.Anything, mock.Anything).
		Return(&scoreapi.StatusError{Code: 401, Message: "Invalid credentials"}).Once()
	f := NewFormsView(api, nil)
	f.ShowRegister()

	out := f.SubmitLogin(context.Background(), LoginForm{Username: "foo", Password: "nope"})
	assert.Equal(t, Outcome{Alert: "Login failed: Invalid credentials"}, out)
	assert.Equal(t, PanelRegister, f.Snapshot().Panel)
}

func TestFormsView_SubmitLogin_UnknownError(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Login", mock.Anything, mock.Anything).Return(&scoreapi.StatusError{Code: 500}).Once()
	f := NewFormsView(api, nil)

	out := f.SubmitLogin(context.Background(), LoginForm{})
	assert.Equal(t, "Login failed: Unknown error", out.Alert)
}

func TestFormsView_SubmitLogin_NetworkError(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Login", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	f := NewFormsView(api, nil)

	out := f.SubmitLogin(context.Background(), LoginForm{})
	assert.Equal(t, "Could not connect to the server.", out.Alert)
}

func TestFormsView_SubmitRegister_PasswordMismatch(t *testing.T) {
	api := &scoreapi.APIMock{}
	f := NewFormsView(api, nil)

	out := f.SubmitRegister(context.Background(), RegisterForm{Username: "a", Password: "x", ConfirmPassword: "y"})
	assert.Equal(t, Outcome{Alert: "Passwords do not match!"}, out)
	api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestFormsView_SubmitRegister_Success(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Register", mock.Anything, scoreapi.Credentials{Username: "a", Password: "x"}).Return(nil).Once()
	f := NewFormsView(api, nil)

	out := f.SubmitRegister(context.Background(), RegisterForm{Username: "a", Password: "x", ConfirmPassword: "x"})
	assert.Equal(t, Outcome{Redirect: "/"}, out)
	api.AssertExpectations(t)
}

func TestFormsView_SubmitRegister_Taken(t *testing.T) {
	api := &scoreapi.APIMock{}
	api.On("Register", mock.Anything, mock.Anything).
		Return(&scoreapi.StatusError{Code: 409, Message: "Username already exists"}).Once()
	f := NewFormsView(api, nil)

	out := f.SubmitRegister(context.Background(), RegisterForm{Username: "a", Password: "x", ConfirmPassword: "x"})
	assert.Equal(t, "Registration failed: Username already exists", out.Alert)
}
