// Package session keeps the signed session cookie that identifies the logged-in user.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"todo-web/pkg/logger"
)

const CookieName = "session"

var (
	ErrNoSecret = errors.New("session secret is not set")
	ErrRevoked  = errors.New("session revoked")
)

// Options configures a Manager.
type Options struct {
	Secret  string
	TTL     time.Duration
	Secure  bool
	Revoker Revoker
}

// Manager issues, resolves and ends sessions.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	revoker Revoker
	now     func() time.Time
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, ErrNoSecret
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Revoker == nil {
		opts.Revoker = NewMemoryRevoker()
	}
	return &Manager{
		secret:  []byte(opts.Secret),
		ttl:     opts.TTL,
		secure:  opts.Secure,
		revoker: opts.Revoker,
		now:     time.Now,
	}, nil
}

// Token mints a signed token whose subject is userID.
func (m *Manager) Token(userID int64) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a token and returns the user id it names.
func (m *Manager) Parse(ctx context.Context, token string) (int64, error) {
	claims, err := m.claims(token)
	if err != nil {
		return 0, err
	}
	revoked, err := m.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return 0, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return 0, ErrRevoked
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad subject %q: %w", claims.Subject, err)
	}
	return id, nil
}

// Issue starts a session for userID on the response.
func (m *Manager) Issue(c *gin.Context, userID int64) error {
	token, err := m.Token(userID)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	m.setCookie(c, token, int(m.ttl.Seconds()))
	return nil
}

// Resolve returns the user id carried by the request's session cookie. Any
// failure reads as no session.
func (m *Manager) Resolve(c *gin.Context) (int64, bool) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return 0, false
	}
	id, err := m.Parse(c.Request.Context(), token)
	if err != nil {
		logger.Debug(c.Request.Context(), "Session rejected", "error", err)
		m.setCookie(c, "", -1)
		return 0, false
	}
	return id, true
}

// End revokes the current token until it would have expired and clears the cookie.
func (m *Manager) End(c *gin.Context) error {
	defer m.setCookie(c, "", -1)
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return nil
	}
	claims, err := m.claims(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return m.revoker.Revoke(c.Request.Context(), claims.ID, ttl)
}

func (m *Manager) claims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", m.secure, true)
}
