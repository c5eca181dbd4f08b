package session

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Storage is the persistent key-value store the manager keeps its session
// in. Implementations never return errors: underlying failures are logged
// and swallowed, a missing value is simply absent.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Keys() []string
}

// RemovePrefix drops every key with the given prefix. Used on sign-out to
// purge stale auth material left behind by earlier versions.
func RemovePrefix(s Storage, prefix string) {
	for _, k := range s.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.Remove(k)
		}
	}
}

// MemoryStorage is a process-local Storage, mainly for tests.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryStorage) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *MemoryStorage) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// FileStorage persists keys as a single JSON object on disk. Read and
// write failures are logged and swallowed; callers see a missing value.
type FileStorage struct {
	path string
	log  zerolog.Logger

	mu   sync.Mutex
	data map[string]string
}

func NewFileStorage(path string, log zerolog.Logger) *FileStorage {
	fs := &FileStorage{
		path: path,
		log:  log,
		data: make(map[string]string),
	}
	fs.load()
	return fs
}

func (f *FileStorage) load() {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn().Err(err).Str("path", f.path).Msg("storage read failed")
		}
		return
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("storage decode failed")
		f.data = make(map[string]string)
	}
}

func (f *FileStorage) flush() {
	raw, err := json.Marshal(f.data)
	if err != nil {
		f.log.Warn().Err(err).Msg("storage encode failed")
		return
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("storage write failed")
	}
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.flush()
}

func (f *FileStorage) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.flush()
}

func (f *FileStorage) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys
}
