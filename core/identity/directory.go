package identity

import "errors"

// ErrNotFound is the single negative result for all directory lookups:
// unknown address, wrong secret and wrong role are indistinguishable.
var ErrNotFound = errors.New("identity not found")

// Directory is a read-only set of Identities, fixed at process start.
type Directory interface {
	// Find returns the Identity matching email, secret AND role
	// simultaneously. Matching is exact and case-sensitive; any
	// mismatch yields ErrNotFound.
	Find(email, secret, role string) (Identity, error)
	GetByID(id string) (Identity, error)
	GetByEmail(email string) (Identity, error)
	QueryAll() ([]Identity, error)
	Size() int
}
