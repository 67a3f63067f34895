package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltStore returns a new instance of the bolt shelf store in a temporary path.
func newTestBoltStore() (*boltShelfStorage, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		Store: StoreConfig{
			Backend:    BoltBackend,
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.shelf",
		},
	}

	client, err := GetBoltDBClient(testConfig)
	if err != nil {
		return nil, err
	}

	return &boltShelfStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.Store,
	}, nil
}

// closeTestBoltStore closes the temporary bolt store and removes the underlying data file.
func (bs *boltShelfStorage) closeTestBoltStore() error {
	defer os.Remove(bs.config.FilePath)
	return bs.Close()
}

// Ensure the bolt store provides the default shelf before any write.
func TestBoltStore_LoadDefault(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	shelf, err := bs.Load(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, NewShelf(), shelf)
}

// Ensure the constructor seeds the default document into the bucket.
func TestBoltStore_SeedsDocument(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	store, err := NewBoltShelfStorage(zap.NewNop(), bs.config, bs.client)
	require.NoError(t, err)

	shelf, err := store.Load(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, NewShelf(), shelf)
}

// Ensure the bolt store can persist a mutation of the shelf document.
func TestBoltStore_MutatePersists(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	err = bs.Mutate(context.TODO(), func(shelf *Shelf) error {
		shelf.Books = append(shelf.Books, Book{ID: shelf.NextBookIdentifier(), Title: "Bolt test book title"})
		return nil
	})
	assert.NoError(t, err)

	shelf, err := bs.Load(context.TODO())
	assert.NoError(t, err)
	require.Len(t, shelf.Books, 1)
	assert.Equal(t, int64(1), shelf.Books[0].ID)
	assert.Equal(t, "Bolt test book title", shelf.Books[0].Title)
	assert.Equal(t, int64(2), shelf.NextBookID)
}

// Ensure a failed mutation rolls the bolt transaction back.
func TestBoltStore_MutateAborted(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	failure := errors.New("boom")
	err = bs.Mutate(context.TODO(), func(shelf *Shelf) error {
		shelf.Books = append(shelf.Books, Book{ID: 99, Title: "should never be saved"})
		return failure
	})
	assert.ErrorIs(t, err, failure)

	shelf, err := bs.Load(context.TODO())
	assert.NoError(t, err)
	assert.Empty(t, shelf.Books)
	assert.Equal(t, int64(1), shelf.NextBookID)
}
