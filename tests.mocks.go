package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

// MockShelfStorage implements a fake ShelfStorage with configurable behaviors.
type MockShelfStorage struct {
	LoadFunc   func(ctx context.Context) (Shelf, error)
	MutateFunc func(ctx context.Context, apply func(*Shelf) error) error
	CloseFunc  func() error
}

// Load mocks the retrieval of the shelf document by the repository.
func (m *MockShelfStorage) Load(ctx context.Context) (Shelf, error) {
	return m.LoadFunc(ctx)
}

// Mutate mocks the guarded read-modify-write sequence of the repository.
func (m *MockShelfStorage) Mutate(ctx context.Context, apply func(*Shelf) error) error {
	return m.MutateFunc(ctx, apply)
}

// Close mocks the repository shutdown.
func (m *MockShelfStorage) Close() error {
	if m.CloseFunc == nil {
		return nil
	}
	return m.CloseFunc()
}

// NewMockShelfStorage returns a mocked storage operating on the given
// in-memory shelf document, with working load and mutate behaviors.
func NewMockShelfStorage(shelf *Shelf) *MockShelfStorage {
	return &MockShelfStorage{
		LoadFunc: func(_ context.Context) (Shelf, error) {
			return *shelf, nil
		},
		MutateFunc: func(_ context.Context, apply func(*Shelf) error) error {
			return apply(shelf)
		},
	}
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// Zero returns zero time like the real clock does.
func (mck *MockClocker) Zero() time.Time {
	return time.Time{}
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
