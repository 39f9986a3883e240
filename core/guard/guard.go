// Package guard decides, per navigation, whether a protected region
// renders or redirects. It holds no state of its own: every evaluation
// is a pure function of the auth gate's outputs and the route's
// required role.
package guard

import "github.com/trezcool/elimu/core/identity"

type State int

const (
	Loading State = iota
	Authorized
	Denied
)

func (s State) String() string {
	switch s {
	case Loading:
		return "LOADING"
	case Authorized:
		return "AUTHORIZED"
	case Denied:
		return "DENIED"
	}
	return "UNKNOWN"
}

// Navigation targets. Redirects are declarative: the routing
// collaborator performs the actual navigation.
const (
	LoginPath    = "/login"
	AdminHome    = "/admin"
	StandardHome = "/dashboard"
)

type Decision struct {
	State    State
	Redirect string // set only when State is Denied
}

// RoleHome returns the landing path for a session's own role.
func RoleHome(role string) string {
	if role == identity.RoleAdministrator {
		return AdminHome
	}
	return StandardHome
}

// Evaluate decides a protected region. requiredRole may be empty, in
// which case any authenticated session is authorized. A session with
// the wrong role is bounced to its own role home, not to login.
func Evaluate(loading bool, sess *identity.Session, requiredRole string) Decision {
	if loading {
		return Decision{State: Loading}
	}
	if sess == nil {
		return Decision{State: Denied, Redirect: LoginPath}
	}
	if requiredRole != "" && sess.Role != requiredRole {
		return Decision{State: Denied, Redirect: RoleHome(sess.Role)}
	}
	return Decision{State: Authorized}
}

// EvaluateAnon decides an auth-only region (login, register): an
// already-authenticated session is redirected straight to its role home
// instead of seeing the form again.
func EvaluateAnon(loading bool, sess *identity.Session) Decision {
	if loading {
		return Decision{State: Loading}
	}
	if sess != nil {
		return Decision{State: Denied, Redirect: RoleHome(sess.Role)}
	}
	return Decision{State: Authorized}
}
