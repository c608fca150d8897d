package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
)

var _ repository.KVStore = (*FileStore)(nil)

// namespaceRe restringe los namespaces a nombres de archivo seguros (uuid, slugs).
var namespaceRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// errCorrupt el archivo existe y se leyó, pero su contenido no es JSON válido.
var errCorrupt = errors.New("contenido corrupto")

// FileStore persiste cada namespace en <dir>/<namespace>.json. Las escrituras son síncronas y
// atómicas (archivo temporal + rename): ante un corte queda el archivo anterior o el nuevo.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore crea el directorio de datos si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(namespace string) (string, error) {
	if !namespaceRe.MatchString(namespace) {
		return "", fmt.Errorf("storage: namespace %q: %w", namespace, domain.ErrInvalidInput)
	}
	return filepath.Join(f.dir, namespace+".json"), nil
}

// load lee el namespace completo. Un archivo inexistente es un namespace vacío;
// un archivo ilegible o con JSON inválido es ErrStorage.
func (f *FileStore) load(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %v: %w", filepath.Base(path), err, domain.ErrStorage)
	}
	data := map[string]string{}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("storage: parsear %s: %v: %w: %w", filepath.Base(path), err, errCorrupt, domain.ErrStorage)
	}
	return data, nil
}

// loadForWrite como load, pero un archivo corrupto se trata como namespace vacío para que la
// siguiente escritura lo reemplace. Los errores de lectura se devuelven sin tocar el archivo.
func (f *FileStore) loadForWrite(path string) (map[string]string, error) {
	data, err := f.load(path)
	if errors.Is(err, errCorrupt) {
		return map[string]string{}, nil
	}
	return data, err
}

func (f *FileStore) save(path string, data map[string]string) error {
	if len(data) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("storage: eliminar %s: %v: %w", filepath.Base(path), err, domain.ErrStorage)
		}
		return nil
	}
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: serializar: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("storage: escribir %s: %v: %w", filepath.Base(tmp), err, domain.ErrStorage)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage: renombrar %s: %v: %w", filepath.Base(path), err, domain.ErrStorage)
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, namespace, key string) (string, error) {
	path, err := f.path(namespace)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load(path)
	if err != nil {
		return "", err
	}
	v, ok := data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (f *FileStore) Set(_ context.Context, namespace, key, value string) error {
	path, err := f.path(namespace)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.loadForWrite(path)
	if err != nil {
		return err
	}
	data[key] = value
	return f.save(path, data)
}

func (f *FileStore) Remove(_ context.Context, namespace string, keys ...string) error {
	path, err := f.path(namespace)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.loadForWrite(path)
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(data, k)
	}
	return f.save(path, data)
}
