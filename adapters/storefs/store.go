package storefs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-folio/folio"
)

// Store persists uploaded photos on the local filesystem.
type Store struct {
	Root    string
	BaseURL string
}

// NewStore creates a filesystem-backed photo store. Stored files are
// referenced as BaseURL-relative paths.
func NewStore(root string) *Store {
	return &Store{Root: root, BaseURL: "/uploads"}
}

// Put writes the photo atomically and returns its reference path.
func (s *Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	_ = ctx
	if s == nil || s.Root == "" {
		return "", folio.NewError(folio.KindInternal, "photo store root is required", nil)
	}
	if key == "" {
		return "", folio.NewError(folio.KindValidation, "photo key is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(pathOnDisk), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(pathOnDisk), ".upload-*")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), pathOnDisk); err != nil {
		return "", err
	}

	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = "/uploads"
	}
	return base + "/" + path.Clean(key), nil
}

// Get reads a stored photo back by its key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	if s == nil || s.Root == "" {
		return nil, folio.NewError(folio.KindInternal, "photo store root is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(pathOnDisk)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, folio.NewError(folio.KindNotFound, "photo not found", err)
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) resolvePath(key string) (string, error) {
	clean := path.Clean("/" + key)
	rel := strings.TrimPrefix(clean, "/")
	if rel == "" || rel == "." {
		return "", folio.NewError(folio.KindValidation, "invalid photo key", nil)
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, root+string(os.PathSeparator)) && target != root {
		return "", folio.NewError(folio.KindValidation, "photo key escapes root", nil)
	}
	return target, nil
}
