package query

import (
	"time"

	"gorm.io/gorm"
)

const MaxLimit = 100

// Filter is the shared pagination and created_at window for list queries.
type Filter struct {
	Skip  int
	Limit int
	From  *time.Time
	To    *time.Time
}

// Window applies the From/To bounds against created_at.
func (f Filter) Window(q *gorm.DB) *gorm.DB {
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", f.To.UTC())
	}
	return q
}

// Page applies offset and a clamped limit.
func (f Filter) Page(q *gorm.DB, defaultLimit int) *gorm.DB {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}
	return q.Offset(skip).Limit(limit)
}
