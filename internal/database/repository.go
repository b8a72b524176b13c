package database

import (
	"time"
)

// Clock supplies the current time for timestamps.
type Clock func() time.Time

// store is the state shared by the entity repositories.
type store struct {
	guard *Guard
	clock Clock
}

// now returns the current time at the precision timestamps are stored with.
func (s *store) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

// Repository provides a unified interface to all data operations.
// It composes the entity repositories using struct embedding; all of them go
// through the same guard.
type Repository struct {
	*BoardRepo
	*ColumnRepo
	*CardRepo
}

// Option configures a Repository.
type Option func(*store)

// WithClock overrides time.Now for timestamps.
func WithClock(clock Clock) Option {
	return func(s *store) {
		s.clock = clock
	}
}

// NewRepository creates a new Repository on top of the given guard.
func NewRepository(g *Guard, opts ...Option) *Repository {
	s := &store{guard: g, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return &Repository{
		BoardRepo:  &BoardRepo{store: s},
		ColumnRepo: &ColumnRepo{store: s},
		CardRepo:   &CardRepo{store: s},
	}
}
