// Package inmemkv provides a volatile kv.Store for tests and DEV runs.
package inmemkv

import (
	"sync"

	"github.com/trezcool/elimu/storage/kv"
)

type store struct {
	table map[string]string
	mutex sync.RWMutex
}

var _ kv.Store = (*store)(nil)

func NewStore() kv.Store {
	return &store{table: make(map[string]string)}
}

func (st *store) Get(key string) (string, error) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()

	if val, ok := st.table[key]; ok {
		return val, nil
	}
	return "", kv.ErrNotFound
}

func (st *store) Set(key, value string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.table[key] = value
	return nil
}

func (st *store) Remove(key string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	delete(st.table, key)
	return nil
}
