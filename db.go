package puttempo

import "time"

// ExistingRecord carries the bookkeeping columns of a persisted row.
type ExistingRecord[T ~string] struct {
	ID        T
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewExistingRecord[T ~string](id T, now time.Time) ExistingRecord[T] {
	return ExistingRecord[T]{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *ExistingRecord[T]) Touch(now time.Time) {
	r.UpdatedAt = now
}
