// Package inmemdb holds the app's data in mutex-guarded in-memory
// tables. There is no persistence layer: all tables reset at process
// start, except the session store which lives in storage/kv.
package inmemdb

import (
	"sync"

	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/identity"
)

type (
	identityTable struct {
		table map[string]*identity.Identity
		mutex sync.RWMutex
	}

	courseTable struct {
		table map[string]*catalog.Course
		mutex sync.RWMutex
	}

	enrollmentTable struct {
		table map[string]*catalog.Enrollment
		mutex sync.RWMutex
	}

	certificateTable struct {
		table map[string]*catalog.Certificate
		mutex sync.RWMutex
	}

	DB struct {
		identity    *identityTable
		course      *courseTable
		enrollment  *enrollmentTable
		certificate *certificateTable
	}
)

func Open() *DB {
	return &DB{
		identity:    &identityTable{table: make(map[string]*identity.Identity)},
		course:      &courseTable{table: make(map[string]*catalog.Course)},
		enrollment:  &enrollmentTable{table: make(map[string]*catalog.Enrollment)},
		certificate: &certificateTable{table: make(map[string]*catalog.Certificate)},
	}
}

// AddIdentities seeds the identity table. The Directory contract is
// read-only; seeding happens before the directory is handed out.
func AddIdentities(db *DB, idents ...identity.Identity) {
	db.identity.mutex.Lock()
	defer db.identity.mutex.Unlock()
	for i := range idents {
		ident := idents[i]
		db.identity.table[ident.ID] = &ident
	}
}
