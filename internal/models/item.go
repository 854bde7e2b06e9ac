package models

import (
	"math"
	"time"
)

// Item is a single dated to-do entry owned by one user.
type Item struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	ListName    string    `json:"list_name"`
	StartDate   time.Time `json:"start_date"`
	DateCreated time.Time `json:"date_created"`
	Completed   bool      `json:"completed"`
}

// DaysRemaining is the whole-day distance from creation to the target date,
// rounded towards negative infinity.
func (i Item) DaysRemaining() int {
	return int(math.Floor(i.StartDate.Sub(i.DateCreated).Hours() / 24))
}

// DueSoon reports whether an open item targets a date at most one day after it was created.
func (i Item) DueSoon() bool {
	return !i.Completed && i.DaysRemaining() <= 1
}

// NextDue returns the due-soon item with the earliest start date (lowest id on ties),
// or nil when none is due soon.
func NextDue(items []Item) *Item {
	var next *Item
	for idx := range items {
		it := &items[idx]
		if !it.DueSoon() {
			continue
		}
		if next == nil || it.StartDate.Before(next.StartDate) ||
			(it.StartDate.Equal(next.StartDate) && it.ID < next.ID) {
			next = it
		}
	}
	return next
}
