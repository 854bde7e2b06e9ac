package controller

import (
	"context"
	"net/http"
	"time"

	"todo-web/internal/middleware"
	"todo-web/internal/models"
	"todo-web/internal/queue"
	"todo-web/internal/session"
	"todo-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserStore is the credential store the handlers need.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// ItemStore is the owner-scoped item store the handlers need.
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	ByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	ByOwnerAndStatus(ctx context.Context, ownerID int64, completed bool) ([]models.Item, error)
	MarkComplete(ctx context.Context, itemID, principalID int64) error
	Delete(ctx context.Context, itemID, principalID int64) error
}

// Hasher turns a plaintext password into a storable hash.
type Hasher interface {
	Hash(plain string) (string, error)
}

// Publisher receives activity events.
type Publisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// Deps are the collaborators injected into the handlers.
type Deps struct {
	Users    UserStore
	Items    ItemStore
	Sessions *session.Manager
	Hasher   Hasher
	Events   Publisher
	// GenericLoginErrors hides whether an email is registered on failed logins.
	GenericLoginErrors bool
	// Ready holds the readiness probes; the "database" probe is required.
	Ready map[string]func(ctx context.Context) error
	Now   func() time.Time
}

// Controller holds the HTTP handlers.
type Controller struct {
	users        UserStore
	items        ItemStore
	sessions     *session.Manager
	hasher       Hasher
	events       Publisher
	genericLogin bool
	ready        map[string]func(ctx context.Context) error
	now          func() time.Time
}

func New(d Deps) *Controller {
	if d.Events == nil {
		d.Events = queue.Nop{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Controller{
		users:        d.Users,
		items:        d.Items,
		sessions:     d.Sessions,
		hasher:       d.Hasher,
		events:       d.Events,
		genericLogin: d.GenericLoginErrors,
		ready:        d.Ready,
		now:          d.Now,
	}
}

// render fills in the fields every page layout uses.
func (ctl *Controller) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	u, ok := middleware.CurrentUser(c)
	data["User"] = u
	data["LoggedIn"] = ok
	data["Year"] = ctl.now().Year()
	data["Flashes"] = session.Flashes(c)
	c.HTML(status, name, data)
}

func (ctl *Controller) redirect(c *gin.Context, path string) {
	session.SaveFlashes(c)
	c.Redirect(http.StatusFound, path)
}

func (ctl *Controller) fail(c *gin.Context, status int, message string) {
	ctl.render(c, status, "error.html", gin.H{"Status": status, "Message": message})
}

func (ctl *Controller) internalError(c *gin.Context, msg string, err error) {
	logger.Error(c.Request.Context(), msg, "error", err)
	ctl.fail(c, http.StatusInternalServerError, "Something went wrong, please try again.")
}

// publish never fails the request; a lost activity event is only logged.
func (ctl *Controller) publish(ctx context.Context, typ string, userID, itemID int64) {
	if err := ctl.events.Publish(ctx, queue.NewEvent(typ, userID, itemID)); err != nil {
		logger.Warn(ctx, "Activity publish failed", "error", err, "type", typ)
	}
}
