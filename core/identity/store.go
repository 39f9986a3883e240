package identity

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/storage/kv"
)

// sessionKey is the single fixed key under which the current Session
// is persisted. The store holds zero or one entry; there is no
// multi-session support.
const sessionKey = "elimu_session"

// SessionStore (de)serializes the current Session under sessionKey in a
// durable kv.Store. The Gate is its sole reader and writer.
type SessionStore struct {
	kv kv.Store
}

func NewSessionStore(store kv.Store) *SessionStore {
	return &SessionStore{kv: store}
}

// Read returns the persisted Session, or nil when the store is empty.
// The stored value is decoded as-is; it is not validated against the
// Directory.
func (st *SessionStore) Read() (*Session, error) {
	val, err := st.kv.Get(sessionKey)
	if err != nil {
		if errors.Cause(err) == kv.ErrNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading session entry")
	}

	var sess Session
	if err = json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, errors.Wrap(err, "decoding session entry")
	}
	return &sess, nil
}

func (st *SessionStore) Write(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session entry")
	}
	return errors.Wrap(st.kv.Set(sessionKey, string(data)), "writing session entry")
}

func (st *SessionStore) Clear() error {
	return errors.Wrap(st.kv.Remove(sessionKey), "removing session entry")
}
