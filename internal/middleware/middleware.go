package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"todo-web/internal/models"
	"todo-web/internal/repository"
	"todo-web/internal/session"
	"todo-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userKey = "user"

// UserLookup materializes the session principal.
type UserLookup interface {
	ByID(ctx context.Context, id int64) (*models.User, error)
}

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)
		ctx := logger.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		logger.Info(ctx, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds())
	}
}

// Authenticate resolves the session cookie to a user. A missing, invalid or
// revoked session, or a user that no longer exists, leaves the request anonymous.
func Authenticate(sessions *session.Manager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, ok := sessions.Resolve(c)
		if !ok {
			c.Next()
			return
		}
		u, err := users.ByID(ctx, id)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				logger.Error(ctx, "Session user lookup failed", "error", err, "user_id", id)
			}
			c.Next()
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// RequireAuthenticated sends anonymous callers to the login page.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			session.AddFlash(c, "error", "Please log in to access this page.")
			session.SaveFlashes(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnonymous sends logged-in callers back home.
func RequireAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
