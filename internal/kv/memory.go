package kv

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// Memory is an in-process Adapter used for ephemeral sessions and tests.
// Reads and writes can be forced to fail to exercise degradation paths.
type Memory struct {
	data   *xsync.MapOf[string, string]
	writes atomic.Int64

	mu       sync.RWMutex
	readErr  error
	writeErr error
}

var _ Adapter = (*Memory)(nil)

// NewMemory returns an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{data: xsync.NewMapOf[string, string]()}
}

// FailReads makes every Get return err until called again with nil.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()
}

// FailWrites makes every Set and Delete return err until called again with nil.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.writeErr = err
	m.mu.Unlock()
}

// Writes reports how many Set calls succeeded.
func (m *Memory) Writes() int64 {
	return m.writes.Load()
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	return m.data.Size()
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	err := m.readErr
	m.mu.RUnlock()
	if err != nil {
		return "", false, err
	}
	value, ok := m.data.Load(key)
	return value, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := m.writeError(ctx); err != nil {
		return err
	}
	m.data.Store(key, value)
	m.writes.Add(1)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := m.writeError(ctx); err != nil {
		return err
	}
	m.data.Delete(key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) writeError(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writeErr
}
