package routes

import (
	"context"
	"sync"
	"time"

	"todo-web/internal/models"
	"todo-web/internal/queue"
	"todo-web/internal/repository"
)

// memUsers mirrors the Postgres store, including the unique email constraint.
type memUsers struct {
	mu     sync.Mutex
	rows   map[int64]*models.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{rows: make(map[int64]*models.User)}
}

func (m *memUsers) Create(_ context.Context, name, email, hash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = repository.NormalizeEmail(email)
	for _, u := range m.rows {
		if u.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	u := &models.User{ID: m.nextID, Name: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	m.rows[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = repository.NormalizeEmail(email)
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) ByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// memItems mirrors the Postgres item store's owner scoping.
type memItems struct {
	mu     sync.Mutex
	rows   []models.Item
	nextID int64
}

func (m *memItems) Create(_ context.Context, it *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	it.ID = m.nextID
	it.Completed = false
	m.rows = append(m.rows, *it)
	return nil
}

func (m *memItems) ByOwner(_ context.Context, owner int64) ([]models.Item, error) {
	return m.filter(func(it models.Item) bool { return it.OwnerID == owner }), nil
}

func (m *memItems) ByOwnerAndStatus(_ context.Context, owner int64, completed bool) ([]models.Item, error) {
	return m.filter(func(it models.Item) bool { return it.OwnerID == owner && it.Completed == completed }), nil
}

func (m *memItems) MarkComplete(_ context.Context, id, principal int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.owned(id, principal)
	if err != nil {
		return err
	}
	m.rows[i].Completed = true
	return nil
}

func (m *memItems) Delete(_ context.Context, id, principal int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.owned(id, principal)
	if err != nil {
		return err
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

func (m *memItems) owned(id, principal int64) (int, error) {
	for i, it := range m.rows {
		if it.ID != id {
			continue
		}
		if it.OwnerID != principal {
			return 0, repository.ErrForbidden
		}
		return i, nil
	}
	return 0, repository.ErrNotFound
}

func (m *memItems) filter(keep func(models.Item) bool) []models.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Item
	for _, it := range m.rows {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

type recordingEvents struct {
	mu     sync.Mutex
	events []queue.Event
}

func (r *recordingEvents) Publish(_ context.Context, ev queue.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}
