package guard

import (
	"testing"

	"github.com/trezcool/elimu/core/identity"
)

func Test_Evaluate(t *testing.T) {
	student := &identity.Session{ID: "2", Name: "Test User", Email: "user@example.com", Role: identity.RoleStandard}
	admin := &identity.Session{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: identity.RoleAdministrator}

	tests := []struct {
		name         string
		loading      bool
		sess         *identity.Session
		requiredRole string
		want         Decision
	}{
		{name: "loading, no session", loading: true, want: Decision{State: Loading}},
		{name: "loading wins over session", loading: true, sess: admin, requiredRole: identity.RoleAdministrator, want: Decision{State: Loading}},
		{name: "no session -> login", want: Decision{State: Denied, Redirect: LoginPath}},
		{name: "no session, admin required -> login", requiredRole: identity.RoleAdministrator, want: Decision{State: Denied, Redirect: LoginPath}},
		{name: "standard, no required role", sess: student, want: Decision{State: Authorized}},
		{name: "admin, no required role", sess: admin, want: Decision{State: Authorized}},
		{name: "standard on standard route", sess: student, requiredRole: identity.RoleStandard, want: Decision{State: Authorized}},
		{name: "admin on admin route", sess: admin, requiredRole: identity.RoleAdministrator, want: Decision{State: Authorized}},
		{name: "standard on admin route -> own home", sess: student, requiredRole: identity.RoleAdministrator, want: Decision{State: Denied, Redirect: StandardHome}},
		{name: "admin on standard route -> own home", sess: admin, requiredRole: identity.RoleStandard, want: Decision{State: Denied, Redirect: AdminHome}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.loading, tt.sess, tt.requiredRole); got != tt.want {
				t.Errorf("Evaluate() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func Test_EvaluateAnon(t *testing.T) {
	student := &identity.Session{ID: "2", Role: identity.RoleStandard}
	admin := &identity.Session{ID: "1", Role: identity.RoleAdministrator}

	tests := []struct {
		name    string
		loading bool
		sess    *identity.Session
		want    Decision
	}{
		{name: "loading", loading: true, want: Decision{State: Loading}},
		{name: "anonymous may view", want: Decision{State: Authorized}},
		{name: "standard bounced home", sess: student, want: Decision{State: Denied, Redirect: StandardHome}},
		{name: "admin bounced home", sess: admin, want: Decision{State: Denied, Redirect: AdminHome}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateAnon(tt.loading, tt.sess); got != tt.want {
				t.Errorf("EvaluateAnon() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func Test_RoleHome(t *testing.T) {
	if got := RoleHome(identity.RoleAdministrator); got != AdminHome {
		t.Errorf("RoleHome(administrator) = %v; want %v", got, AdminHome)
	}
	if got := RoleHome(identity.RoleStandard); got != StandardHome {
		t.Errorf("RoleHome(standard) = %v; want %v", got, StandardHome)
	}
	// unknown roles fall back to the standard home
	if got := RoleHome("lol"); got != StandardHome {
		t.Errorf("RoleHome(unknown) = %v; want %v", got, StandardHome)
	}
}
