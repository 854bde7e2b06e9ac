package controller

import (
	"errors"
	"net/http"

	"todo-web/internal/middleware"
	"todo-web/internal/password"
	"todo-web/internal/queue"
	"todo-web/internal/repository"
	"todo-web/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	msgUnknownEmail   = "That email doesn't exist, Please try again!"
	msgWrongPassword  = "Password Incorrect, Please try again!"
	msgBadCredentials = "Invalid email or password, Please try again!"
)

type registerForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	Repeat   string `form:"repeat"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type passwordForm struct {
	Current  string `form:"current" binding:"required"`
	New      string `form:"new" binding:"required"`
	NewAgain string `form:"new_again"`
}

func (ctl *Controller) RegisterPage(c *gin.Context) {
	ctl.render(c, http.StatusOK, "register.html", nil)
}

// Register creates the account and logs it in. The UNIQUE constraint decides
// whether the email is taken.
func (ctl *Controller) Register(c *gin.Context) {
	ctx := c.Request.Context()
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "error", msgEmptyFields)
		ctl.render(c, http.StatusOK, "register.html", nil)
		return
	}
	if form.Password != form.Repeat {
		session.AddFlash(c, "error", "That passwords don't match, Please try again!")
		ctl.render(c, http.StatusOK, "register.html", nil)
		return
	}
	hash, err := ctl.hasher.Hash(form.Password)
	if err != nil {
		ctl.internalError(c, "Register hash failed", err)
		return
	}
	u, err := ctl.users.Create(ctx, form.Name, form.Email, hash)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		session.AddFlash(c, "error", "This email already exists. Log In instead.")
		ctl.redirect(c, "/login")
		return
	}
	if err != nil {
		ctl.internalError(c, "Register create user failed", err)
		return
	}
	if err := ctl.sessions.Issue(c, u.ID); err != nil {
		ctl.internalError(c, "Register start session failed", err)
		return
	}
	ctl.publish(ctx, queue.UserRegistered, u.ID, 0)
	session.AddFlash(c, "success", "Registration successful!")
	ctl.redirect(c, "/")
}

func (ctl *Controller) LoginPage(c *gin.Context) {
	ctl.render(c, http.StatusOK, "login.html", nil)
}

// Login starts a session when the email exists and the password verifies.
func (ctl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "error", msgEmptyFields)
		ctl.render(c, http.StatusOK, "login.html", nil)
		return
	}
	u, err := ctl.users.ByEmail(ctx, form.Email)
	if errors.Is(err, repository.ErrNotFound) {
		ctl.loginFailed(c, msgUnknownEmail)
		return
	}
	if err != nil {
		ctl.internalError(c, "Login lookup failed", err)
		return
	}
	if !password.Verify(u.PasswordHash, form.Password) {
		ctl.loginFailed(c, msgWrongPassword)
		return
	}
	if err := ctl.sessions.Issue(c, u.ID); err != nil {
		ctl.internalError(c, "Login start session failed", err)
		return
	}
	session.AddFlash(c, "success", "Login successful!")
	ctl.redirect(c, "/")
}

func (ctl *Controller) loginFailed(c *gin.Context, msg string) {
	if ctl.genericLogin {
		msg = msgBadCredentials
	}
	session.AddFlash(c, "error", msg)
	ctl.render(c, http.StatusOK, "login.html", nil)
}

// Logout ends the session.
func (ctl *Controller) Logout(c *gin.Context) {
	if err := ctl.sessions.End(c); err != nil {
		ctl.internalError(c, "Logout revoke failed", err)
		return
	}
	ctl.redirect(c, "/")
}

func (ctl *Controller) SettingsPage(c *gin.Context) {
	ctl.render(c, http.StatusOK, "settings.html", nil)
}

// ChangePassword replaces the caller's password once the current one verifies.
// Every outcome redirects home.
func (ctl *Controller) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()
	u, _ := middleware.CurrentUser(c)

	var form passwordForm
	switch err := c.ShouldBind(&form); {
	case err != nil:
		session.AddFlash(c, "error", msgEmptyFields)
	case !password.Verify(u.PasswordHash, form.Current):
		session.AddFlash(c, "error", "Password doesn't match your current password, Please try again!")
	case form.New != form.NewAgain:
		session.AddFlash(c, "error", "New password doesn't match the repeated password, Please try again!")
	default:
		hash, err := ctl.hasher.Hash(form.New)
		if err != nil {
			ctl.internalError(c, "ChangePassword hash failed", err)
			return
		}
		if err := ctl.users.UpdatePassword(ctx, u.ID, hash); err != nil {
			ctl.internalError(c, "ChangePassword update failed", err)
			return
		}
		ctl.publish(ctx, queue.UserPasswordChanged, u.ID, 0)
		session.AddFlash(c, "success", "Password successfully changed!")
	}
	ctl.redirect(c, "/")
}
