package inmemdb

import (
	"sort"

	"github.com/trezcool/elimu/core/identity"
)

type identityDirectory struct {
	db *identityTable
}

func NewIdentityDirectory(db *DB) identity.Directory {
	return &identityDirectory{db: db.identity}
}

func (dir *identityDirectory) query() []identity.Identity {
	idents := make([]identity.Identity, 0, len(dir.db.table))
	for _, ident := range dir.db.table {
		idents = append(idents, *ident)
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i].ID < idents[j].ID })
	return idents
}

func (dir *identityDirectory) Find(email, secret, role string) (identity.Identity, error) {
	dir.db.mutex.RLock()
	defer dir.db.mutex.RUnlock()

	// all three fields must match the same Identity, exactly
	for _, ident := range dir.query() {
		if ident.Email == email && ident.Secret == secret && ident.Role == role {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrNotFound
}

func (dir *identityDirectory) GetByID(id string) (identity.Identity, error) {
	dir.db.mutex.RLock()
	defer dir.db.mutex.RUnlock()

	if ident, ok := dir.db.table[id]; ok {
		return *ident, nil
	}
	return identity.Identity{}, identity.ErrNotFound
}

func (dir *identityDirectory) GetByEmail(email string) (identity.Identity, error) {
	dir.db.mutex.RLock()
	defer dir.db.mutex.RUnlock()

	for _, ident := range dir.query() {
		if ident.Email == email {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrNotFound
}

func (dir *identityDirectory) QueryAll() ([]identity.Identity, error) {
	dir.db.mutex.RLock()
	defer dir.db.mutex.RUnlock()
	return dir.query(), nil
}

func (dir *identityDirectory) Size() int {
	dir.db.mutex.RLock()
	defer dir.db.mutex.RUnlock()
	return len(dir.db.table)
}
