// Package session holds the dashboard login state: a signed cookie carrying
// {username, role}. The credential pairs are the workshop's demo logins, not
// a security mechanism.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"

	CookieName = "workshop_session"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Demo credential pairs: username -> password, username -> role.
var credentials = map[string]string{
	"client": "client",
	"admin":  "admin",
}

var roles = map[string]string{
	"client": RoleClient,
	"admin":  RoleAdmin,
}

type User struct {
	Username string
	Role     string
}

// Authenticate matches the hardcoded pairs and returns the user on success.
func Authenticate(username, password string) (User, error) {
	if pw, ok := credentials[username]; !ok || pw != password {
		return User{}, ErrInvalidCredentials
	}
	return User{Username: username, Role: roles[username]}, nil
}

// Issue signs a session token for the user, valid for 24 hours.
func Issue(u User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": u.Username,
		"role":     u.Role,
		"exp":      jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	return token.SignedString([]byte(secret))
}

// Parse validates a token and extracts the user.
func Parse(tokenString, secret string) (User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return User{}, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("invalid claims")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if username == "" || role == "" {
		return User{}, errors.New("incomplete claims")
	}
	return User{Username: username, Role: role}, nil
}

type contextKey string

const userCtxKey contextKey = "session_user"

// FromContext returns the logged-in user placed by Middleware.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userCtxKey).(User)
	return u, ok
}

// Middleware reads the session cookie and puts the user into the request
// context. Requests without a valid session are redirected to /login.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			u, err := Parse(cookie.Value, secret)
			if err != nil {
				ClearCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), userCtxKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetCookie attaches the session token to the response.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
