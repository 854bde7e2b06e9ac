package routes

import (
	"net/http"

	"todo-web/internal/controller"
	"todo-web/internal/middleware"
	"todo-web/internal/session"
	"todo-web/internal/views"

	"github.com/gin-gonic/gin"
)

func Router(ctl *controller.Controller, sessions *session.Manager, users middleware.UserLookup) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(views.Static()))

	// Health for load balancers and K8s probes
	router.GET("/health", controller.Health)
	router.GET("/ready", ctl.Ready)

	app := router.Group("")
	app.Use(middleware.Authenticate(sessions, users))
	{
		app.GET("/", ctl.Home)
		app.POST("/", ctl.CreateItem)
	}

	// Only while logged out
	anon := app.Group("")
	anon.Use(middleware.RequireAnonymous())
	{
		anon.GET("/register", ctl.RegisterPage)
		anon.POST("/register", ctl.Register)
		anon.GET("/login", ctl.LoginPage)
		anon.POST("/login", ctl.Login)
	}

	// Session required
	auth := app.Group("")
	auth.Use(middleware.RequireAuthenticated())
	{
		auth.GET("/settings", ctl.SettingsPage)
		auth.POST("/settings", ctl.ChangePassword)
		auth.GET("/logout", ctl.Logout)
		auth.GET("/filter", ctl.FilterPage)
		auth.POST("/filter", ctl.Filter)
		auth.GET("/update/:id", ctl.Update)
		auth.GET("/delete/:id", ctl.Delete)
	}

	return router, nil
}
