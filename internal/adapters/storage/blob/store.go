// Package blob guarda cada colección como un JSON bajo una clave string,
// igual que el almacenamiento clave-valor de la app móvil.
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store es el almacenamiento clave-valor opaco (memoria o SQLite).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	Remove(ctx context.Context, key string) error
}

// DB serializa los read-modify-write sobre el Store.
// Sin esto dos requests concurrentes pisan la lista entera (last write wins por clave).
type DB struct {
	mu    sync.Mutex
	store Store
}

func NewDB(store Store) *DB {
	return &DB{store: store}
}

// load decodifica la clave en una lista; clave ausente => lista vacía.
func load[T any](ctx context.Context, db *DB, key string) ([]T, error) {
	raw, ok, err := db.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// read toma el lock sólo para leer una copia consistente.
func read[T any](ctx context.Context, db *DB, key string) ([]T, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return load[T](ctx, db, key)
}

// update aplica fn sobre la lista guardada y persiste el resultado.
// Si fn devuelve error no se escribe nada.
func update[T any](ctx context.Context, db *DB, key string, fn func([]T) ([]T, error)) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	items, err := load[T](ctx, db, key)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := db.store.Set(ctx, key, b); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func remove(ctx context.Context, db *DB, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := db.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// MemoryStore es el backend por defecto (dev/tests).
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), payload...)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
