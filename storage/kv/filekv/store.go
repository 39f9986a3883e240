// Package filekv provides a file-backed kv.Store that survives restarts.
package filekv

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/storage/kv"
)

type store struct {
	path  string
	mutex sync.Mutex
}

var _ kv.Store = (*store)(nil)

// NewStore persists entries as a JSON object in the file at path.
// The file is created lazily on first Set.
func NewStore(path string) kv.Store {
	return &store{path: path}
}

func (st *store) Get(key string) (string, error) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	entries, err := st.load()
	if err != nil {
		return "", err
	}
	val, ok := entries[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return val, nil
}

func (st *store) Set(key, value string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	entries, err := st.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return st.save(entries)
}

func (st *store) Remove(key string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	entries, err := st.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return st.save(entries)
}

func (st *store) load() (map[string]string, error) {
	entries := make(map[string]string)
	data, err := ioutil.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, errors.Wrap(err, "reading store file")
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "decoding store file")
	}
	return entries, nil
}

// save writes to a temp file then renames it over the store file so a
// crash mid-write never leaves a half-written store.
func (st *store) save(entries map[string]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "encoding store file")
	}

	dir := filepath.Dir(st.path)
	tmp, err := ioutil.TempFile(dir, filepath.Base(st.path)+".tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp store file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp store file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp store file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), st.path), "replacing store file")
}
