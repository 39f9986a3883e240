package identity

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/trezcool/elimu/core"
)

// Gate validates credentials against the Directory and owns the current
// Session, in memory and in the SessionStore. Consumers read the
// Session through Current(); only the Gate mutates it. Handlers call in
// from concurrent goroutines: commands hold the write lock for their
// full duration, so the transient loading state inside Login/Register
// is never observable from outside.
type Gate struct {
	dir    Directory
	store  *SessionStore
	logger core.Logger

	mutex   sync.RWMutex
	current *Session
	loading bool
}

func NewGate(dir Directory, store *SessionStore, logger core.Logger) *Gate {
	return &Gate{
		dir:     dir,
		store:   store,
		logger:  logger,
		loading: true,
	}
}

// Init performs the one-time startup read of the SessionStore. A stored
// Session is adopted as-is, without re-validation against the
// Directory. Always resolves the loading state.
func (g *Gate) Init() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	defer func() { g.loading = false }()

	sess, err := g.store.Read()
	if err != nil {
		g.logger.Error(fmt.Sprintf("reading stored session: %v", err), err)
		return
	}
	g.current = sess
}

// Login checks email, secret and the caller-asserted role against the
// Directory. On a match the matched Identity becomes the current
// Session (secret stripped) and is persisted. On a non-match the
// current Session is left untouched, whatever it was.
func (g *Gate) Login(email, secret, role string) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.loading = true
	defer func() { g.loading = false }()

	ident, err := g.dir.Find(email, secret, role)
	if err != nil {
		return false
	}

	sess := ident.Session()
	g.current = &sess
	if err = g.store.Write(sess); err != nil {
		g.logger.Error(fmt.Sprintf("persisting session: %v", err), err)
	}
	return true
}

// Logout clears the current Session and removes the store entry.
func (g *Gate) Logout() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.current = nil
	if err := g.store.Clear(); err != nil {
		g.logger.Error(fmt.Sprintf("clearing session store: %v", err), err)
	}
}

// Register synthesizes a Session with role RoleStandard and an ID
// derived from the Directory size, adopts and persists it. The new
// identity is NOT added to the Directory: logging out and back in with
// these credentials fails. Kept as-is to match the reference app.
func (g *Gate) Register(name, email, secret string) Session {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.loading = true
	defer func() { g.loading = false }()

	sess := Session{
		ID:    strconv.Itoa(g.dir.Size() + 1),
		Name:  name,
		Email: email,
		Role:  RoleStandard,
	}
	g.current = &sess
	if err := g.store.Write(sess); err != nil {
		g.logger.Error(fmt.Sprintf("persisting session: %v", err), err)
	}
	return sess
}

// Current returns the current Session, or nil when unauthenticated.
func (g *Gate) Current() *Session {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.current
}

// Loading reports whether the startup store read has not completed yet.
func (g *Gate) Loading() bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.loading
}
