package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"todo-web/internal/middleware"
	"todo-web/internal/models"
	"todo-web/internal/queue"
	"todo-web/internal/repository"
	"todo-web/internal/session"

	"github.com/gin-gonic/gin"
)

const filterAll = "all"

// FilterPage shows every item with the filter form.
func (ctl *Controller) FilterPage(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	items, err := ctl.items.ByOwner(c.Request.Context(), u.ID)
	if err != nil {
		ctl.internalError(c, "Filter list items failed", err)
		return
	}
	ctl.renderFiltered(c, filterAll, items)
}

// Filter lists the caller's items by completion state ("all", or anything
// strconv.ParseBool accepts).
func (ctl *Controller) Filter(c *gin.Context) {
	ctx := c.Request.Context()
	u, _ := middleware.CurrentUser(c)

	selected := strings.ToLower(strings.TrimSpace(c.PostForm("select1")))
	var (
		items []models.Item
		err   error
	)
	if selected == filterAll {
		items, err = ctl.items.ByOwner(ctx, u.ID)
	} else if completed, perr := strconv.ParseBool(selected); perr == nil {
		selected = strconv.FormatBool(completed)
		items, err = ctl.items.ByOwnerAndStatus(ctx, u.ID, completed)
	} else {
		session.AddFlash(c, "error", "Unknown filter, showing every item.")
		selected = filterAll
		items, err = ctl.items.ByOwner(ctx, u.ID)
	}
	if err != nil {
		ctl.internalError(c, "Filter list items failed", err)
		return
	}
	ctl.renderFiltered(c, selected, items)
}

func (ctl *Controller) renderFiltered(c *gin.Context, selected string, items []models.Item) {
	ctl.render(c, http.StatusOK, "index.html", gin.H{
		"Filtering": true,
		"Filter":    selected,
		"Items":     items,
		"Number":    len(items),
		"Empty":     len(items) == 0,
	})
}

// Update marks the caller's item complete.
func (ctl *Controller) Update(c *gin.Context) {
	ctl.mutateItem(c, queue.ItemCompleted, func(id, owner int64) error {
		return ctl.items.MarkComplete(c.Request.Context(), id, owner)
	})
}

// Delete removes the caller's item.
func (ctl *Controller) Delete(c *gin.Context) {
	ctl.mutateItem(c, queue.ItemDeleted, func(id, owner int64) error {
		return ctl.items.Delete(c.Request.Context(), id, owner)
	})
}

func (ctl *Controller) mutateItem(c *gin.Context, event string, op func(id, owner int64) error) {
	u, _ := middleware.CurrentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctl.fail(c, http.StatusNotFound, "Item not found.")
		return
	}
	switch err := op(id, u.ID); {
	case errors.Is(err, repository.ErrNotFound):
		ctl.fail(c, http.StatusNotFound, "Item not found.")
	case errors.Is(err, repository.ErrForbidden):
		ctl.fail(c, http.StatusForbidden, "That item belongs to someone else.")
	case err != nil:
		ctl.internalError(c, "Item "+event+" failed", err)
	default:
		ctl.publish(c.Request.Context(), event, u.ID, id)
		ctl.redirect(c, "/")
	}
}
