package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBookService provides a book service operating on an in-memory shelf.
func newTestBookService(shelf *Shelf) BookServiceProvider {
	return NewBookService(zap.NewNop(), &Config{}, NewMockShelfStorage(shelf))
}

// newTestUserService provides a user service operating on an in-memory shelf.
func newTestUserService(shelf *Shelf) UserServiceProvider {
	return NewUserService(zap.NewNop(), &Config{}, NewMockShelfStorage(shelf))
}

// Ensure book ids come from the shelf counter and never restart.
func TestBookService_AddAssignsSequentialIDs(t *testing.T) {
	shelf := NewShelf()
	service := newTestBookService(&shelf)

	first, err := service.Add(context.TODO(), Book{Title: "first"})
	require.NoError(t, err)
	second, err := service.Add(context.TODO(), Book{Title: "second"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), shelf.NextBookID)
	require.Len(t, shelf.Books, 2)
}

// Ensure a document carrying a broken counter value is repaired on write.
func TestBookService_AddWithInvalidCounter(t *testing.T) {
	shelf := Shelf{Books: []Book{}, NextBookID: 0}
	service := newTestBookService(&shelf)

	book, err := service.Add(context.TODO(), Book{Title: "repaired"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)
	assert.Equal(t, int64(2), shelf.NextBookID)
}

func TestBookService_GetOne(t *testing.T) {
	shelf := Shelf{Books: []Book{{ID: 1, Title: "present"}}, NextBookID: 2}
	service := newTestBookService(&shelf)

	book, err := service.GetOne(context.TODO(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "present", book.Title)

	_, err = service.GetOne(context.TODO(), 42)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

// Ensure update replaces the whole record and keeps only the id. Fields
// absent from the incoming record are dropped, never merged back.
func TestBookService_UpdateReplacesRecord(t *testing.T) {
	shelf := Shelf{
		Books:      []Book{{ID: 1, Title: "old title", Author: "old author", Year: 1990, Genre: "old genre", Price: 9.99}},
		NextBookID: 2,
	}
	service := newTestBookService(&shelf)

	book, err := service.Update(context.TODO(), 1, Book{Title: "new title", Author: "new author"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)
	assert.Equal(t, Book{ID: 1, Title: "new title", Author: "new author"}, shelf.Books[0])
}

func TestBookService_UpdateMissingRecord(t *testing.T) {
	shelf := NewShelf()
	service := newTestBookService(&shelf)

	book, err := service.Update(context.TODO(), 7, Book{Title: "nothing"})
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Equal(t, int64(7), book.ID)
	assert.Empty(t, shelf.Books)
}

// Ensure delete removes the record and freed ids are never reused.
func TestBookService_Delete(t *testing.T) {
	shelf := Shelf{Books: []Book{{ID: 1}, {ID: 2}}, NextBookID: 3}
	service := newTestBookService(&shelf)

	err := service.Delete(context.TODO(), 1)
	require.NoError(t, err)
	require.Len(t, shelf.Books, 1)
	assert.Equal(t, int64(2), shelf.Books[0].ID)

	book, err := service.Add(context.TODO(), Book{Title: "after delete"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), book.ID)

	err = service.Delete(context.TODO(), 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

// Ensure listing a shelf without any record yields an empty collection,
// never a nil one, so callers always serialize a JSON array.
func TestBookService_GetAllOnEmptyShelf(t *testing.T) {
	shelf := Shelf{}
	service := newTestBookService(&shelf)

	books, err := service.GetAll(context.TODO())
	assert.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

// Ensure storage failures bubble up unchanged to the caller.
func TestBookService_StorageFailure(t *testing.T) {
	failure := errors.New("storage is down")
	storage := &MockShelfStorage{
		LoadFunc: func(_ context.Context) (Shelf, error) {
			return Shelf{}, failure
		},
		MutateFunc: func(_ context.Context, _ func(*Shelf) error) error {
			return failure
		},
	}
	service := NewBookService(zap.NewNop(), &Config{}, storage)

	_, err := service.Add(context.TODO(), Book{Title: "unreachable"})
	assert.ErrorIs(t, err, failure)
	_, err = service.GetOne(context.TODO(), 1)
	assert.ErrorIs(t, err, failure)
	_, err = service.GetAll(context.TODO())
	assert.ErrorIs(t, err, failure)
	err = service.Delete(context.TODO(), 1)
	assert.ErrorIs(t, err, failure)
}

// Ensure the first user creation materializes the users collection and
// its counter without touching the books side of the document.
func TestUserService_AddInitializesUsers(t *testing.T) {
	shelf := NewShelf()
	service := newTestUserService(&shelf)

	user, err := service.Add(context.TODO(), User{Name: "ana", Email: "ana@example.com", Role: DefaultUserRole})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int64(2), shelf.NextUserID)
	require.Len(t, shelf.Users, 1)
	assert.Equal(t, "reader", shelf.Users[0].Role)

	assert.Equal(t, int64(1), shelf.NextBookID)
	assert.Empty(t, shelf.Books)
}

func TestUserService_GetOne(t *testing.T) {
	shelf := Shelf{
		Books:      []Book{},
		NextBookID: 1,
		Users:      []User{{ID: 1, Name: "ana", Email: "ana@example.com", Role: "admin"}},
		NextUserID: 2,
	}
	service := newTestUserService(&shelf)

	user, err := service.GetOne(context.TODO(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	_, err = service.GetOne(context.TODO(), 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateReplacesRecord(t *testing.T) {
	shelf := Shelf{
		Books:      []Book{},
		NextBookID: 1,
		Users:      []User{{ID: 1, Name: "ana", Email: "ana@example.com", Role: "admin"}},
		NextUserID: 2,
	}
	service := newTestUserService(&shelf)

	user, err := service.Update(context.TODO(), 1, User{Name: "anna", Email: "anna@example.com", Role: DefaultUserRole})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, User{ID: 1, Name: "anna", Email: "anna@example.com", Role: "reader"}, shelf.Users[0])

	_, err = service.Update(context.TODO(), 9, User{Name: "ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	shelf := Shelf{
		Books:      []Book{},
		NextBookID: 1,
		Users:      []User{{ID: 1, Name: "ana", Email: "ana@example.com", Role: "reader"}},
		NextUserID: 2,
	}
	service := newTestUserService(&shelf)

	err := service.Delete(context.TODO(), 1)
	require.NoError(t, err)
	assert.Empty(t, shelf.Users)
	assert.Equal(t, int64(2), shelf.NextUserID)

	err = service.Delete(context.TODO(), 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetAllOnEmptyShelf(t *testing.T) {
	shelf := NewShelf()
	service := newTestUserService(&shelf)

	users, err := service.GetAll(context.TODO())
	assert.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
