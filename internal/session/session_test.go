package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		username, password string
		wantRole           string
		wantErr            bool
	}{
		{"client", "client", RoleClient, false},
		{"admin", "admin", RoleAdmin, false},
		{"client", "wrong", "", true},
		{"admin", "", "", true},
		{"nobody", "nobody", "", true},
	}
	for _, tt := range tests {
		u, err := Authenticate(tt.username, tt.password)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Authenticate(%q, %q): want error", tt.username, tt.password)
			}
			continue
		}
		if err != nil {
			t.Errorf("Authenticate(%q, %q): %v", tt.username, tt.password, err)
			continue
		}
		if u.Role != tt.wantRole {
			t.Errorf("role = %q, want %q", u.Role, tt.wantRole)
		}
	}
}

func TestIssueParseRoundTrip(t *testing.T) {
	token, err := Issue(User{Username: "admin", Role: RoleAdmin}, "secret")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	u, err := Parse(token, "secret")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Username != "admin" || u.Role != RoleAdmin {
		t.Errorf("user = %+v", u)
	}

	if _, err := Parse(token, "other-secret"); err == nil {
		t.Error("Parse with wrong secret should fail")
	}
	if _, err := Parse("garbage", "secret"); err == nil {
		t.Error("Parse of garbage should fail")
	}
}

func TestMiddleware(t *testing.T) {
	var seen User
	handler := Middleware("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))

	// No cookie: redirect to login.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("no cookie: status = %d, want 303", rec.Code)
	}

	// Valid cookie: user lands in context.
	token, _ := Issue(User{Username: "client", Role: RoleClient}, "secret")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid cookie: status = %d, want 200", rec.Code)
	}
	if seen.Role != RoleClient {
		t.Errorf("context user = %+v", seen)
	}

	// Tampered cookie: cleared and redirected.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token + "x"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("bad cookie: status = %d, want 303", rec.Code)
	}
}
