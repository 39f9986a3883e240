package identity

// Roles
const (
	RoleStandard      = "standard"      // -> STUDENT PORTAL
	RoleAdministrator = "administrator" // -> ADMIN PORTAL
)

var AllRoles = []string{RoleStandard, RoleAdministrator}

// Identity is a known principal with credentials and a role.
// Secrets are held as opaque plaintext fixtures; credential hashing is
// out of this app's scope.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Secret string `json:"-"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdministrator }

// Session returns the runtime representation of the Identity, secret stripped.
func (i Identity) Session() Session {
	return Session{
		ID:    i.ID,
		Name:  i.Name,
		Email: i.Email,
		Role:  i.Role,
	}
}

// Session is "who is currently signed in": an Identity minus its secret.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdministrator }
