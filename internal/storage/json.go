package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JsonBlob is a file-backed persistence storing each value as one json file.
type JsonBlob struct {
	dir string
}

func NewJsonBlob(dir string) *JsonBlob {
	if dir == "" {
		dir = DefaultDir
	}
	return &JsonBlob{dir: dir}
}

func (s *JsonBlob) Store(k Key, value interface{}) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("could not make dir '%s': %w", s.dir, err)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}

	fn := s.fileName(k)
	if err := os.WriteFile(fn, b, 0644); err != nil {
		return fmt.Errorf("could not write file '%s': %w", fn, err)
	}
	return nil
}

func (s *JsonBlob) Load(k Key, value interface{}) error {
	fn := s.fileName(k)

	data, err := os.ReadFile(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s': %w", fn, NotFoundErr)
		}
		return fmt.Errorf("could not read file '%s': %w", fn, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s': %v: %w", fn, err, CouldNotLoadErr)
	}
	return nil
}

func (s *JsonBlob) fileName(k Key) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", k.Path()))
}
