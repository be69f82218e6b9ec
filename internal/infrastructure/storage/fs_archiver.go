package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FSArchiver guarda los archivos bajo un directorio raíz local.
type FSArchiver struct {
	root string
}

// NewFSArchiver crea el directorio raíz si no existe.
func NewFSArchiver(root string) (*FSArchiver, error) {
	if root == "" {
		root = "./data/imports"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear raíz %s: %w", root, err)
	}
	return &FSArchiver{root: root}, nil
}

// Archive escribe data en root/key. Falla con ErrExists si la clave ya existe.
func (a *FSArchiver) Archive(ctx context.Context, key, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(a.root, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExists, k)
		}
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(path), nil
}
