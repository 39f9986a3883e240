package identity

import (
	"sync"
	"testing"

	"github.com/trezcool/elimu/storage/kv/inmemkv"
)

// fakeDirectory is a fixed in-memory Directory for Gate tests.
type fakeDirectory struct {
	idents []Identity
}

var _ Directory = (*fakeDirectory)(nil)

func (d *fakeDirectory) Find(email, secret, role string) (Identity, error) {
	for _, ident := range d.idents {
		if ident.Email == email && ident.Secret == secret && ident.Role == role {
			return ident, nil
		}
	}
	return Identity{}, ErrNotFound
}

func (d *fakeDirectory) GetByID(id string) (Identity, error) {
	for _, ident := range d.idents {
		if ident.ID == id {
			return ident, nil
		}
	}
	return Identity{}, ErrNotFound
}

func (d *fakeDirectory) GetByEmail(email string) (Identity, error) {
	for _, ident := range d.idents {
		if ident.Email == email {
			return ident, nil
		}
	}
	return Identity{}, ErrNotFound
}

func (d *fakeDirectory) QueryAll() ([]Identity, error) { return d.idents, nil }
func (d *fakeDirectory) Size() int                     { return len(d.idents) }

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestDirectory() *fakeDirectory {
	return &fakeDirectory{idents: []Identity{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Secret: "admin123", Role: RoleAdministrator},
		{ID: "2", Name: "Test User", Email: "user@example.com", Secret: "user123", Role: RoleStandard},
	}}
}

func TestGate_Login(t *testing.T) {
	dir := newTestDirectory()

	tests := []struct {
		name   string
		email  string
		secret string
		role   string
		want   bool
	}{
		{name: "valid standard", email: "user@example.com", secret: "user123", role: RoleStandard, want: true},
		{name: "valid admin", email: "admin@example.com", secret: "admin123", role: RoleAdministrator, want: true},
		{name: "unknown email", email: "nobody@example.com", secret: "user123", role: RoleStandard},
		{name: "wrong secret", email: "user@example.com", secret: "nope", role: RoleStandard},
		{name: "wrong role", email: "user@example.com", secret: "user123", role: RoleAdministrator},
		{name: "case-sensitive email", email: "User@Example.com", secret: "user123", role: RoleStandard},
		{name: "case-sensitive secret", email: "user@example.com", secret: "USER123", role: RoleStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(dir, NewSessionStore(inmemkv.NewStore()), nopLogger{})
			gate.Init()

			if ok := gate.Login(tt.email, tt.secret, tt.role); ok != tt.want {
				t.Fatalf("Login() = %v, want %v", ok, tt.want)
			}
			if gate.Loading() {
				t.Errorf("Loading() = true after Login()")
			}

			sess := gate.Current()
			if !tt.want {
				if sess != nil {
					t.Errorf("Current() = %+v, want nil", sess)
				}
				return
			}
			if sess == nil {
				t.Fatal("Current() = nil after successful Login()")
			}
			if sess.Email != tt.email || sess.Role != tt.role {
				t.Errorf("Current() = %+v; want email %q role %q", sess, tt.email, tt.role)
			}

			// the session is persisted
			stored, err := gate.store.Read()
			if err != nil {
				t.Fatalf("store.Read(): %v", err)
			}
			if stored == nil || *stored != *sess {
				t.Errorf("stored session = %+v, want %+v", stored, sess)
			}
		})
	}
}

func TestGate_LoginFailureKeepsSession(t *testing.T) {
	gate := NewGate(newTestDirectory(), NewSessionStore(inmemkv.NewStore()), nopLogger{})
	gate.Init()

	if ok := gate.Login("user@example.com", "user123", RoleStandard); !ok {
		t.Fatal("Login() = false, want true")
	}
	prev := *gate.Current()

	// a failed attempt does not sign the previous session out
	if ok := gate.Login("user@example.com", "nope", RoleStandard); ok {
		t.Fatal("Login() = true, want false")
	}
	if sess := gate.Current(); sess == nil || *sess != prev {
		t.Errorf("Current() = %+v, want %+v", sess, prev)
	}
	stored, err := gate.store.Read()
	if err != nil {
		t.Fatalf("store.Read(): %v", err)
	}
	if stored == nil || *stored != prev {
		t.Errorf("stored session = %+v, want %+v", stored, prev)
	}
}

func TestGate_SessionSurvivesRestart(t *testing.T) {
	dir := newTestDirectory()
	store := NewSessionStore(inmemkv.NewStore())

	gate := NewGate(dir, store, nopLogger{})
	gate.Init()
	if ok := gate.Login("admin@example.com", "admin123", RoleAdministrator); !ok {
		t.Fatal("Login() = false, want true")
	}
	prev := *gate.Current()

	// a new gate over the same store rehydrates the session
	gate = NewGate(dir, store, nopLogger{})
	if !gate.Loading() {
		t.Error("Loading() = false before Init()")
	}
	gate.Init()
	if gate.Loading() {
		t.Error("Loading() = true after Init()")
	}
	if sess := gate.Current(); sess == nil || *sess != prev {
		t.Errorf("Current() = %+v, want %+v", sess, prev)
	}
}

func TestGate_Logout(t *testing.T) {
	dir := newTestDirectory()
	store := NewSessionStore(inmemkv.NewStore())

	gate := NewGate(dir, store, nopLogger{})
	gate.Init()
	if ok := gate.Login("user@example.com", "user123", RoleStandard); !ok {
		t.Fatal("Login() = false, want true")
	}

	gate.Logout()
	if sess := gate.Current(); sess != nil {
		t.Errorf("Current() = %+v, want nil", sess)
	}

	// the store entry is gone: a restart comes up signed out
	gate = NewGate(dir, store, nopLogger{})
	gate.Init()
	if sess := gate.Current(); sess != nil {
		t.Errorf("Current() = %+v after restart, want nil", sess)
	}
}

func TestGate_InitTrustsStoredSession(t *testing.T) {
	// a stored session is adopted as-is, even when the directory has no
	// matching identity
	kvStore := inmemkv.NewStore()
	if err := kvStore.Set("elimu_session", `{"id":"999","name":"Ghost","email":"ghost@example.com","role":"administrator"}`); err != nil {
		t.Fatalf("kv.Set(): %v", err)
	}

	gate := NewGate(newTestDirectory(), NewSessionStore(kvStore), nopLogger{})
	gate.Init()

	sess := gate.Current()
	if sess == nil {
		t.Fatal("Current() = nil, want adopted session")
	}
	want := Session{ID: "999", Name: "Ghost", Email: "ghost@example.com", Role: RoleAdministrator}
	if *sess != want {
		t.Errorf("Current() = %+v, want %+v", *sess, want)
	}
}

// run with -race: handlers hit the gate from concurrent goroutines.
func TestGate_ConcurrentAccess(t *testing.T) {
	gate := NewGate(newTestDirectory(), NewSessionStore(inmemkv.NewStore()), nopLogger{})
	gate.Init()

	want := Session{ID: "2", Name: "Test User", Email: "user@example.com", Role: RoleStandard}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 100; j++ {
				gate.Login("user@example.com", "user123", RoleStandard)
				gate.Login("user@example.com", "nope", RoleStandard)
				gate.Logout()
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 100; j++ {
				// the transient loading state inside Login stays
				// behind the lock; readers only see it before Init
				if gate.Loading() {
					t.Error("Loading() = true while commands are in flight")
					return
				}
				if sess := gate.Current(); sess != nil && *sess != want {
					t.Errorf("Current() = %+v, want nil or %+v", *sess, want)
					return
				}
			}
		}()
	}
	close(start)
	wg.Wait()
}

func TestGate_Register(t *testing.T) {
	dir := newTestDirectory()
	store := NewSessionStore(inmemkv.NewStore())

	gate := NewGate(dir, store, nopLogger{})
	gate.Init()

	sess := gate.Register("New Student", "new@example.com", "newpass123")
	want := Session{ID: "3", Name: "New Student", Email: "new@example.com", Role: RoleStandard}
	if sess != want {
		t.Errorf("Register() = %+v, want %+v", sess, want)
	}
	if cur := gate.Current(); cur == nil || *cur != want {
		t.Errorf("Current() = %+v, want %+v", cur, want)
	}
	stored, err := store.Read()
	if err != nil {
		t.Fatalf("store.Read(): %v", err)
	}
	if stored == nil || *stored != want {
		t.Errorf("stored session = %+v, want %+v", stored, want)
	}

	// the directory is untouched: the registered credentials cannot be
	// used to sign back in
	if dir.Size() != 2 {
		t.Errorf("dir.Size() = %d, want 2", dir.Size())
	}
	gate.Logout()
	if ok := gate.Login("new@example.com", "newpass123", RoleStandard); ok {
		t.Error("Login() = true with registered credentials, want false")
	}
}
