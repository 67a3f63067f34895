package main

import "context"

// Shelf is the whole persisted dataset. It is always loaded and saved as one
// unit: the book and user collections plus their id counters. The users
// collection and its counter only appear in the serialized form once the
// first user has been created.
type Shelf struct {
	Books      []Book `json:"books"`
	NextBookID int64  `json:"next_id"`
	Users      []User `json:"users,omitempty"`
	NextUserID int64  `json:"next_user_id,omitempty"`
}

// NewShelf provides the default document persisted on first access.
func NewShelf() Shelf {
	return Shelf{
		Books:      []Book{},
		NextBookID: 1,
	}
}

// NextBookIdentifier allocates the next book id. A document loaded without
// a counter value starts at 1.
func (s *Shelf) NextBookIdentifier() int64 {
	if s.NextBookID < 1 {
		s.NextBookID = 1
	}
	id := s.NextBookID
	s.NextBookID++
	return id
}

// NextUserIdentifier allocates the next user id. The counter is lazily
// initialized by the first user creation.
func (s *Shelf) NextUserIdentifier() int64 {
	if s.NextUserID < 1 {
		s.NextUserID = 1
	}
	id := s.NextUserID
	s.NextUserID++
	return id
}

// ShelfStorage defines possible operations on the shelf document.
// Load never takes the write lock. Mutate serializes the full
// load-apply-save sequence and aborts the save when apply errors.
type ShelfStorage interface {
	Load(ctx context.Context) (Shelf, error)
	Mutate(ctx context.Context, apply func(*Shelf) error) error
	Close() error
}
