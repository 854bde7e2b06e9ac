package controller

import (
	"context"
	"net/http"
	"time"

	"todo-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Health returns 200 if the process is alive. Used by load balancers.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready runs every readiness probe concurrently. A failing database probe makes
// the instance unready; other probes only get logged.
func (ctl *Controller) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for name, probe := range ctl.ready {
		g.Go(func() error {
			err := probe(gctx)
			if err == nil {
				return nil
			}
			logger.Warn(ctx, "Readiness probe failed", "probe", name, "error", err)
			if name == "database" {
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	if _, ok := ctl.ready["database"]; !ok || err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
		return
	}
	c.String(http.StatusOK, "OK")
}
