package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LocalStorage keeps values in memory, for tests and dry runs.
type LocalStorage struct {
	files map[Key][]byte
	mutex *sync.RWMutex
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		files: make(map[Key][]byte),
		mutex: new(sync.RWMutex),
	}
}

func (l *LocalStorage) Store(k Key, value interface{}) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}

	l.files[k] = bb
	return nil
}

func (l *LocalStorage) Load(k Key, value interface{}) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if v, ok := l.files[k]; ok {
		if err := json.Unmarshal(v, value); err != nil {
			return fmt.Errorf("could not unmarshal value: %v: %w", err, CouldNotLoadErr)
		}
		return nil
	}
	return fmt.Errorf("'%+v': %w", k, NotFoundErr)
}

// Len returns the number of stored values.
func (l *LocalStorage) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.files)
}
