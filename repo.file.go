package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// fileShelfStorage persists the whole shelf document as one indented JSON
// file. It owns the mutual exclusion lock which serializes every
// load-mutate-save sequence. Loads do not take the lock: the document is
// replaced by an atomic rename so a concurrent reader always observes a
// complete serialized form.
type fileShelfStorage struct {
	logger *zap.Logger
	config *StoreConfig
	mu     sync.Mutex
}

// NewFileShelfStorage provides an instance of file-based shelf storage.
// A missing document is seeded with the default shelf. Any other read or
// decode failure is surfaced so a corrupted document is never reset.
func NewFileShelfStorage(logger *zap.Logger, config *StoreConfig) (ShelfStorage, error) {
	fs := &fileShelfStorage{
		logger: logger,
		config: config,
	}
	if _, err := os.Stat(config.FilePath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to check the shelf document: %w", err)
		}
		if err := fs.save(NewShelf()); err != nil {
			return nil, fmt.Errorf("failed to seed the shelf document: %w", err)
		}
		logger.Info("store: seeded new shelf document", zap.String("store.file", config.FilePath))
	}
	return fs, nil
}

// Close shuts down the file-based shelf storage.
func (fs *fileShelfStorage) Close() error {
	return nil
}

// Load reads and decodes the current shelf document. When the document
// disappeared at runtime it is re-seeded, matching the first-access behavior.
func (fs *fileShelfStorage) Load(_ context.Context) (Shelf, error) {
	data, err := os.ReadFile(fs.config.FilePath)
	if os.IsNotExist(err) {
		shelf := NewShelf()
		if serr := fs.save(shelf); serr != nil {
			return shelf, fmt.Errorf("failed to seed the shelf document: %w", serr)
		}
		return shelf, nil
	}
	if err != nil {
		return Shelf{}, fmt.Errorf("failed to read the shelf document: %w", err)
	}

	var shelf Shelf
	if err := json.Unmarshal(data, &shelf); err != nil {
		return Shelf{}, fmt.Errorf("failed to decode the shelf document: %w", err)
	}
	return shelf, nil
}

// Mutate serializes the full read-modify-write sequence under the store
// lock. The document is saved only when apply succeeds, so a failed
// mutation never reaches the disk.
func (fs *fileShelfStorage) Mutate(ctx context.Context, apply func(*Shelf) error) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	shelf, err := fs.Load(ctx)
	if err != nil {
		return err
	}

	if err := apply(&shelf); err != nil {
		return err
	}

	return fs.save(shelf)
}

// save writes the document to a temporary file next to the final path and
// renames it over the original. The rename keeps lockless loads consistent.
func (fs *fileShelfStorage) save(shelf Shelf) error {
	data, err := json.MarshalIndent(shelf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode the shelf document: %w", err)
	}

	tmpPath := fs.config.FilePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write the shelf document: %w", err)
	}

	if err := os.Rename(tmpPath, fs.config.FilePath); err != nil {
		if rerr := os.Remove(tmpPath); rerr != nil {
			fs.logger.Error("store: failed to remove temporary document", zap.String("store.file", tmpPath), zap.Error(rerr))
		}
		return fmt.Errorf("failed to replace the shelf document: %w", err)
	}
	return nil
}
