package controller

import (
	"net/http"
	"strings"
	"time"

	"todo-web/internal/middleware"
	"todo-web/internal/models"
	"todo-web/internal/queue"
	"todo-web/internal/session"

	"github.com/gin-gonic/gin"
)

const msgEmptyFields = "Do not leave the fields empty, Please try again!"

// datetime-local inputs submit minutes, and sometimes seconds.
var startDateLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

type itemForm struct {
	ListName   string `form:"list_name" binding:"required"`
	StartDates string `form:"start_dates" binding:"required"`
}

// Home lists the caller's items with the next due one, or shows the landing page.
func (ctl *Controller) Home(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		ctl.render(c, http.StatusOK, "index.html", nil)
		return
	}
	items, err := ctl.items.ByOwner(c.Request.Context(), u.ID)
	if err != nil {
		ctl.internalError(c, "Home list items failed", err)
		return
	}
	ctl.render(c, http.StatusOK, "index.html", gin.H{
		"Items":  items,
		"Number": len(items),
		"Due":    models.NextDue(items),
	})
}

// CreateItem adds an item for the caller. Bad input re-renders the page with a
// flash; success redirects so a refresh does not resubmit.
func (ctl *Controller) CreateItem(c *gin.Context) {
	ctx := c.Request.Context()
	u, loggedIn := middleware.CurrentUser(c)

	var form itemForm
	start, ok := time.Time{}, false
	if err := c.ShouldBind(&form); err == nil && strings.TrimSpace(form.ListName) != "" {
		start, ok = parseStartDate(form.StartDates)
	}
	if !ok {
		session.AddFlash(c, "error", msgEmptyFields)
		if !loggedIn {
			ctl.render(c, http.StatusOK, "index.html", nil)
			return
		}
		items, err := ctl.items.ByOwner(ctx, u.ID)
		if err != nil {
			ctl.internalError(c, "CreateItem list items failed", err)
			return
		}
		ctl.render(c, http.StatusOK, "index.html", gin.H{"Items": items, "Number": len(items)})
		return
	}
	if !loggedIn {
		session.AddFlash(c, "error", "Please log in to add items.")
		ctl.redirect(c, "/login")
		return
	}

	item := &models.Item{
		OwnerID:     u.ID,
		ListName:    strings.TrimSpace(form.ListName),
		StartDate:   start,
		DateCreated: ctl.now().Truncate(time.Minute),
	}
	if err := ctl.items.Create(ctx, item); err != nil {
		ctl.internalError(c, "CreateItem failed", err)
		return
	}
	ctl.publish(ctx, queue.ItemCreated, u.ID, item.ID)
	ctl.redirect(c, "/")
}

func parseStartDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range startDateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
