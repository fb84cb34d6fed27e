package posclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
)

// Session token + usuario tras un login exitoso.
type Session struct {
	Token string          `json:"token"`
	User  dto.SessionUser `json:"user"`
}

// SessionStore persiste la sesión entre ejecuciones. Load devuelve (nil, nil) si no hay sesión.
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// MemoryStore sesión solo en proceso.
type MemoryStore struct {
	mu sync.Mutex
	s  *Session
}

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return nil, nil
	}
	cp := *m.s
	return &cp, nil
}

func (m *MemoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.s = &cp
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}

// FileStore guarda la sesión como JSON en path (permisos 0600).
// Un archivo ilegible se trata como sesión ausente.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore usa path como archivo de sesión.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

func (f *FileStore) Save(s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("crear directorio de sesión: %w", err)
	}
	return os.WriteFile(f.path, raw, 0o600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
