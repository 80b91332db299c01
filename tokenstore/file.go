package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/classowl/go-openclass/authenticationhandler"
)

// FileStore keeps the pair as JSON in a file readable only by the owner.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: filepath.Clean(path)}
}

func (s *FileStore) Load(context.Context) (authenticationhandler.TokenPair, bool, error) {
	var pair authenticationhandler.TokenPair

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return pair, false, nil
	}
	if err != nil {
		return pair, false, fmt.Errorf("reading token file %s: %w", s.Path, err)
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return pair, false, fmt.Errorf("decoding token file %s: %w", s.Path, err)
	}
	return pair, true, nil
}

// Save writes through a temporary file in the same directory so readers never see a partial pair.
func (s *FileStore) Save(_ context.Context, pair authenticationhandler.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating token directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".openclass-tokens-*")
	if err != nil {
		return fmt.Errorf("creating temporary token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

func (s *FileStore) Clear(context.Context) error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
