package credstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lucsky/cuid"
	"gopkg.in/yaml.v3"
)

// FileStore keeps values in a YAML file.
// The file is re-read on every access so that separate CLI invocations see each other's writes.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return "", false, err
	}

	v, ok := data[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}

	data[key] = value
	return s.write(data)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := data[key]; !ok {
		return nil
	}

	delete(data, key)
	return s.write(data)
}

// A missing file reads as an empty store.
func (s *FileStore) read() (map[string]string, error) {
	data := make(map[string]string)

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if err = yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", s.path, err)
	}
	if data == nil {
		data = make(map[string]string)
	}

	return data, nil
}

// Write the whole store to a temp file and move it into place.
func (s *FileStore) write(data map[string]string) error {
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	tmpPath := fmt.Sprintf("%s.%s.tmp", s.path, cuid.New())
	if err = os.WriteFile(tmpPath, b, 0600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	if err = os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write store file: %w", err)
	}

	return nil
}
