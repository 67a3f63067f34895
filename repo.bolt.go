package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// shelfKey is the single bucket key holding the whole shelf document.
const shelfKey = "shelf"

// boltShelfStorage persists the whole shelf document as one JSON value
// under a fixed key. Bolt serializes update transactions, which provides
// the same write guard as the file backend lock.
type boltShelfStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *StoreConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.Store.FilePath, 0o600, &bolt.Options{Timeout: config.Store.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.Store.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.Store.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltShelfStorage provides an instance of bolt-based shelf storage.
// An absent document is seeded with the default shelf.
func NewBoltShelfStorage(logger *zap.Logger, config *StoreConfig, client *bolt.DB) (ShelfStorage, error) {
	bs := &boltShelfStorage{
		logger: logger,
		client: client,
		config: config,
	}
	err := client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(config.BucketName))
		if bucket.Get([]byte(shelfKey)) != nil {
			return nil
		}
		data, err := json.Marshal(NewShelf())
		if err != nil {
			return err
		}
		logger.Info("store: seeded new shelf document", zap.String("store.file", config.FilePath))
		return bucket.Put([]byte(shelfKey), data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed the shelf document: %w", err)
	}
	return bs, nil
}

// Close shuts down the bolt-based shelf storage.
func (bs *boltShelfStorage) Close() error {
	return bs.client.Close()
}

// Load retrieves the current shelf document from the bolt store.
func (bs *boltShelfStorage) Load(_ context.Context) (Shelf, error) {
	var shelf Shelf
	// initialize a readable transaction.
	tx, err := bs.client.Begin(false)
	if err != nil {
		return shelf, err
	}
	defer tx.Rollback()

	result := tx.Bucket([]byte(bs.config.BucketName)).Get([]byte(shelfKey))
	if result == nil {
		return NewShelf(), nil
	}
	if err := json.Unmarshal(result, &shelf); err != nil {
		return shelf, fmt.Errorf("failed to decode the shelf document: %w", err)
	}
	return shelf, nil
}

// Mutate runs the read-modify-write sequence inside one bolt update
// transaction. The document is saved only when apply succeeds.
func (bs *boltShelfStorage) Mutate(_ context.Context, apply func(*Shelf) error) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))

		shelf := NewShelf()
		if result := bucket.Get([]byte(shelfKey)); result != nil {
			if err := json.Unmarshal(result, &shelf); err != nil {
				return fmt.Errorf("failed to decode the shelf document: %w", err)
			}
		}

		if err := apply(&shelf); err != nil {
			return err
		}

		data, err := json.Marshal(shelf)
		if err != nil {
			return fmt.Errorf("failed to encode the shelf document: %w", err)
		}
		return bucket.Put([]byte(shelfKey), data)
	})
}
