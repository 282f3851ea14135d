package storage

import (
	"errors"
	"fmt"
)

var (
	// DefaultDir is the root directory for file-backed artifact storage.
	DefaultDir = "file-storage/artifacts"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a persisted value.
type Key struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func (k Key) Path() string {
	return fmt.Sprintf("%s_%s", k.Name, k.Label)
}

// Persistence stores and retrieves values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// VoidStorage is a dummy persistence which ignores all writes.
type VoidStorage struct {
}

func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

func (d VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (d VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
}
