// Package storage guarda el contenido de los documentos de clientes sobre un afero.Fs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/bufete-crm/internal/application/documents"
	"github.com/jhoicas/bufete-crm/internal/domain"
)

var _ documents.Storage = (*FileStore)(nil)

// FileStore almacena blobs bajo un directorio raíz. Las claves usan "/" como separador.
type FileStore struct {
	fs afero.Fs
}

// NewFileStore crea el almacén sobre fsys enraizado en root (se crea si no existe).
func NewFileStore(fsys afero.Fs, root string) (*FileStore, error) {
	if err := fsys.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("crear directorio de documentos: %w", err)
	}
	return &FileStore{fs: afero.NewBasePathFs(fsys, root)}, nil
}

// NewOsFileStore almacén en disco local.
func NewOsFileStore(root string) (*FileStore, error) {
	return NewFileStore(afero.NewOsFs(), root)
}

// Put escribe content en key, creando los directorios intermedios.
// Nunca sobrescribe: si key ya existe devuelve domain.ErrConflict.
func (s *FileStore) Put(_ context.Context, key string, content []byte) error {
	p, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(p), 0o750); err != nil {
		return fmt.Errorf("crear directorio %s: %w", path.Dir(p), err)
	}
	f, err := s.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("archivo %s: %w", key, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(p)
		return err
	}
	return f.Close()
}

// Get lee el contenido de key. ErrNotFound si no existe.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(s.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("archivo %s: %w", key, domain.ErrNotFound)
	}
	return b, err
}

// Delete elimina key; no falla si ya no existe.
func (s *FileStore) Delete(_ context.Context, key string) error {
	p, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// cleanKey normaliza la clave y rechaza rutas que escapen de la raíz.
func cleanKey(key string) (string, error) {
	p := path.Clean("/" + strings.TrimSpace(key))
	if p == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("clave de almacenamiento %q: %w", key, domain.ErrInvalidInput)
	}
	return p, nil
}
