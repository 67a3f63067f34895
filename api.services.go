package main

import (
	"context"

	"go.uber.org/zap"
)

// BookServiceProvider defines the operations served by the books resource.
type BookServiceProvider interface {
	Add(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
}

// UserServiceProvider defines the operations served by the users resource.
type UserServiceProvider interface {
	Add(ctx context.Context, user User) (User, error)
	GetOne(ctx context.Context, id int64) (User, error)
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, user User) (User, error)
	GetAll(ctx context.Context) ([]User, error)
}

type BookService struct {
	logger  *zap.Logger
	config  *Config
	storage ShelfStorage
}

func NewBookService(logger *zap.Logger, config *Config, storage ShelfStorage) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

// Add appends a new book record with the next id from the shelf counter.
func (bs *BookService) Add(ctx context.Context, book Book) (Book, error) {
	err := bs.storage.Mutate(ctx, func(shelf *Shelf) error {
		book.ID = shelf.NextBookIdentifier()
		shelf.Books = append(shelf.Books, book)
		return nil
	})
	return book, err
}

func (bs *BookService) GetOne(ctx context.Context, id int64) (Book, error) {
	shelf, err := bs.storage.Load(ctx)
	if err != nil {
		return Book{}, err
	}
	for _, book := range shelf.Books {
		if book.ID == id {
			return book, nil
		}
	}
	return Book{}, ErrBookNotFound
}

// Delete removes the first record matching the id. A missing id aborts
// the mutation before anything reaches the store.
func (bs *BookService) Delete(ctx context.Context, id int64) error {
	return bs.storage.Mutate(ctx, func(shelf *Shelf) error {
		for i := range shelf.Books {
			if shelf.Books[i].ID == id {
				shelf.Books = append(shelf.Books[:i], shelf.Books[i+1:]...)
				return nil
			}
		}
		return ErrBookNotFound
	})
}

// Update replaces the whole record in place, keeping only the id. Old
// field values are never merged into the new record.
func (bs *BookService) Update(ctx context.Context, id int64, book Book) (Book, error) {
	book.ID = id
	err := bs.storage.Mutate(ctx, func(shelf *Shelf) error {
		for i := range shelf.Books {
			if shelf.Books[i].ID == id {
				shelf.Books[i] = book
				return nil
			}
		}
		return ErrBookNotFound
	})
	return book, err
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	shelf, err := bs.storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	books := shelf.Books
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

type UserService struct {
	logger  *zap.Logger
	config  *Config
	storage ShelfStorage
}

func NewUserService(logger *zap.Logger, config *Config, storage ShelfStorage) UserServiceProvider {
	return &UserService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

// Add appends a new user record. The users collection and its counter are
// lazily created by the first call.
func (us *UserService) Add(ctx context.Context, user User) (User, error) {
	err := us.storage.Mutate(ctx, func(shelf *Shelf) error {
		if shelf.Users == nil {
			shelf.Users = []User{}
		}
		user.ID = shelf.NextUserIdentifier()
		shelf.Users = append(shelf.Users, user)
		return nil
	})
	return user, err
}

func (us *UserService) GetOne(ctx context.Context, id int64) (User, error) {
	shelf, err := us.storage.Load(ctx)
	if err != nil {
		return User{}, err
	}
	for _, user := range shelf.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (us *UserService) Delete(ctx context.Context, id int64) error {
	return us.storage.Mutate(ctx, func(shelf *Shelf) error {
		for i := range shelf.Users {
			if shelf.Users[i].ID == id {
				shelf.Users = append(shelf.Users[:i], shelf.Users[i+1:]...)
				return nil
			}
		}
		return ErrUserNotFound
	})
}

func (us *UserService) Update(ctx context.Context, id int64, user User) (User, error) {
	user.ID = id
	err := us.storage.Mutate(ctx, func(shelf *Shelf) error {
		for i := range shelf.Users {
			if shelf.Users[i].ID == id {
				shelf.Users[i] = user
				return nil
			}
		}
		return ErrUserNotFound
	})
	return user, err
}

func (us *UserService) GetAll(ctx context.Context) ([]User, error) {
	shelf, err := us.storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	users := shelf.Users
	if users == nil {
		users = []User{}
	}
	return users, nil
}
