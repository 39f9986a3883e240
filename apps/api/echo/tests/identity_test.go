package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core/identity"
	emailsvc "github.com/trezcool/elimu/services/email"
)

func Test_authApi_login(t *testing.T) {
	gate.Logout()

	body := func(email, password, role string) []byte {
		return marchallObj(t, identity.Credentials{Email: email, Secret: password, Role: role})
	}

	tests := []httpTest{
		{
			name: "empty body", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
				"role":     "this field is required",
			}),
		},
		{
			name: "invalid email", body: body("nope", "user123", identity.RoleStandard), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "invalid role", body: body("user@example.com", "user123", "superuser"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "invalid role"}),
		},
		{
			name: "unknown email", body: body("nobody@example.com", "user123", identity.RoleStandard),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "wrong password", body: body("user@example.com", "nope", identity.RoleStandard),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "wrong role asserted", body: body("user@example.com", "user123", identity.RoleAdministrator),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// every rejection above left the gate signed out
	if sess := gate.Current(); sess != nil {
		t.Errorf("gate.Current() = %+v, want nil", sess)
	}

	t.Run("valid credentials", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body("user@example.com", "user123", identity.RoleStandard))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}

		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Unmarshal(): %v", err)
		}
		if resp.Token == "" {
			t.Error("token is empty")
		}
		if resp.User != standardSession {
			t.Errorf("user = %+v, want %+v", resp.User, standardSession)
		}
		if sess := gate.Current(); sess == nil || *sess != standardSession {
			t.Errorf("gate.Current() = %+v, want %+v", sess, standardSession)
		}
	})

	t.Run("failed attempt keeps prior session", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body("user@example.com", "nope", identity.RoleStandard))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusBadRequest)
		}
		if sess := gate.Current(); sess == nil || *sess != standardSession {
			t.Errorf("gate.Current() = %+v, want %+v", sess, standardSession)
		}
	})
}

func Test_authApi_session(t *testing.T) {
	gate.Logout()

	req, rec := newRequest(http.MethodGet, "/v1/auth/session")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, SessionResponse{User: nil, Loading: false}),
	}, rec)

	// once authenticated, the inverse guard points auth-only screens home
	if !gate.Login("admin@example.com", "admin123", identity.RoleAdministrator) {
		t.Fatal("gate.Login() = false, want true")
	}
	req, rec = newRequest(http.MethodGet, "/v1/auth/session")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, SessionResponse{User: &adminSession, Loading: false, Redirect: "/admin"}),
	}, rec)
}

func Test_authApi_logout(t *testing.T) {
	if !gate.Login("user@example.com", "user123", identity.RoleStandard) {
		t.Fatal("gate.Login() = false, want true")
	}

	// auth required
	req, rec := newRequest(http.MethodPost, "/v1/auth/logout")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusUnauthorized,
		wantData: marchallObj(t, errMissingToken),
	}, rec)

	req, rec = newAuthRequest(http.MethodPost, "/v1/auth/logout", getToken(t, standardSession))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want %v; body %v", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if sess := gate.Current(); sess != nil {
		t.Errorf("gate.Current() = %+v, want nil", sess)
	}
}

func Test_authApi_register(t *testing.T) {
	gate.Logout()

	body := func(name, email, password, confirm string) []byte {
		return marchallObj(t, identity.Registration{Name: name, Email: email, Secret: password, SecretConfirm: confirm})
	}

	tests := []httpTest{
		{
			name: "empty body", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name":             "this field is required",
				"email":            "this field is required",
				"password":         "this field is required",
				"password_confirm": "this field is required",
			}),
		},
		{
			name: "punctuation in name", body: body("J@hn <Tester>", "jt@example.com", "s3cr3tpass!", "s3cr3tpass!"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "only alphanumeric characters and underscores are allowed"}),
		},
		{
			name: "password mismatch", body: body("John Tester", "jt@example.com", "s3cr3tpass!", "s3cr3tpass"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password_confirm": "password_confirm must be equal to Secret"}),
		},
		{
			name: "password too similar to email", body: body("John Tester", "jt@example.com", "jt@example.com", "jt@example.com"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be similar to user attributes"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/register", body("John Tester", "jt@example.com", "s3cr3tpass!", "s3cr3tpass!"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Unmarshal(): %v", err)
		}
		// ID derives from the directory size; the new account is not
		// added to the directory itself
		want := identity.Session{ID: "3", Name: "John Tester", Email: "jt@example.com", Role: identity.RoleStandard}
		if resp.User != want {
			t.Errorf("user = %+v, want %+v", resp.User, want)
		}
		if resp.Token == "" {
			t.Error("token is empty")
		}
		if sess := gate.Current(); sess == nil || *sess != want {
			t.Errorf("gate.Current() = %+v, want %+v", sess, want)
		}
		if size := dir.Size(); size != 2 {
			t.Errorf("dir.Size() = %d, want 2", size)
		}
	})

	t.Run("registered credentials cannot sign back in", func(t *testing.T) {
		gate.Logout()
		req, rec := newRequest(http.MethodPost, "/v1/auth/login",
			marchallObj(t, identity.Credentials{Email: "jt@example.com", Secret: "s3cr3tpass!", Role: identity.RoleStandard}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		}, rec)
	})
}

func Test_authApi_resetPassword(t *testing.T) {
	sent := func() int { return len(emailsvc.SentMessages) }
	wantSuccess := marchallObj(t, SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	})

	t.Run("invalid email", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/password-reset", []byte(`{"email": "nope"}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		}, rec)
	})

	t.Run("known email", func(t *testing.T) {
		before := sent()
		req, rec := newRequest(http.MethodPost, "/v1/auth/password-reset", []byte(`{"email": "user@example.com"}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: wantSuccess}, rec)

		if sent() != before+1 {
			t.Fatalf("sent %d messages, want %d", sent(), before+1)
		}
		msg := emailsvc.SentMessages[sent()-1]
		if len(msg.To) != 1 || msg.To[0].Address != "user@example.com" {
			t.Errorf("message recipients = %+v", msg.To)
		}
		if msg.Subject != "Password Reset" {
			t.Errorf("message subject = %q", msg.Subject)
		}
	})

	t.Run("unknown email gets the same response", func(t *testing.T) {
		before := sent()
		req, rec := newRequest(http.MethodPost, "/v1/auth/password-reset", []byte(`{"email": "nobody@example.com"}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: wantSuccess}, rec)

		if sent() != before {
			t.Errorf("sent %d messages, want %d", sent(), before)
		}
	})
}

func Test_authApi_refreshToken(t *testing.T) {
	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/token-refresh")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		}, rec)
	})

	t.Run("valid token", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", getToken(t, standardSession))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var resp TokenResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Unmarshal(): %v", err)
		}
		if resp.Token == "" {
			t.Error("token is empty")
		}
	})

	t.Run("refresh window expired", func(t *testing.T) {
		claims := GetSessionClaims(conf, standardSession, 1 /* 1970 */)
		token, err := GenerateToken(conf, claims)
		if err != nil {
			t.Fatalf("GenerateToken(): %v", err)
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		}, rec)
	})
}
