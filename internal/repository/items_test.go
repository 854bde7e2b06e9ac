package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"todo-web/internal/models"
)

var itemRowColumns = []string{"id", "owner_id", "list_name", "start_date", "date_created", "completed"}

func TestCreateItem(t *testing.T) {
	db, mock := newMock(t)
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(insertItemSQL)).
		WithArgs("Buy milk", start, created, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	it := &models.Item{OwnerID: 1, ListName: "Buy milk", StartDate: start, DateCreated: created, Completed: true}
	if err := NewItems(db).Create(context.Background(), it); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if it.ID != 42 || it.Completed {
		t.Errorf("unexpected item after create: %+v", it)
	}
}

func TestItemsByOwner(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(itemsByOwnerSQL)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(int64(1), int64(1), "a", now, now, false).
			AddRow(int64(2), int64(1), "b", now, now, true))

	items, err := NewItems(db).ByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("ByOwner failed: %v", err)
	}
	if len(items) != 2 || items[0].ListName != "a" || !items[1].Completed {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestItemsByOwnerAndStatus(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(itemsByStatusSQL)).
		WithArgs(int64(1), false).
		WillReturnRows(sqlmock.NewRows(itemRowColumns))

	items, err := NewItems(db).ByOwnerAndStatus(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("ByOwnerAndStatus failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestMarkCompleteOwned(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(markCompleteSQL)).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewItems(db).MarkComplete(context.Background(), 5, 1); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
}

func TestScopedMutationErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		call    func(*Items) error
		owner   *int64
		wantErr error
	}{
		{
			name:    "complete foreign item",
			query:   markCompleteSQL,
			call:    func(r *Items) error { return r.MarkComplete(context.Background(), 5, 2) },
			owner:   ptr(1),
			wantErr: ErrForbidden,
		},
		{
			name:    "delete foreign item",
			query:   deleteItemSQL,
			call:    func(r *Items) error { return r.Delete(context.Background(), 5, 2) },
			owner:   ptr(1),
			wantErr: ErrForbidden,
		},
		{
			name:    "delete missing item",
			query:   deleteItemSQL,
			call:    func(r *Items) error { return r.Delete(context.Background(), 5, 2) },
			wantErr: ErrNotFound,
		},
		{
			name:    "complete missing item",
			query:   markCompleteSQL,
			call:    func(r *Items) error { return r.MarkComplete(context.Background(), 5, 2) },
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(int64(5), int64(2)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			probe := mock.ExpectQuery(regexp.QuoteMeta(itemOwnerSQL)).WithArgs(int64(5))
			if tt.owner != nil {
				probe.WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(*tt.owner))
			} else {
				probe.WillReturnError(sql.ErrNoRows)
			}

			if err := tt.call(NewItems(db)); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func ptr(v int64) *int64 { return &v }
