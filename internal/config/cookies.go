package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrNoToken = errors.New("no session token")

// Cookies store a session token split in two: the readable header and
// payload in "auth" and the signature in the http-only "sign".
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func NewCookies(c Config, jwt *JWT) *Cookies {
	return &Cookies{
		Domain:   c.Domain,
		Secure:   c.Production(),
		SameSite: c.HttpCookieSameSite(),
		jwt:      jwt,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	expires := time.Now().Add(c.jwt.tokenLifetime)
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    header + "." + payload,
		Expires:  expires,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    signature,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

// ParseClaims reads the token from an "Authorization: Bearer" header or,
// failing that, from the cookie pair.
func (c *Cookies) ParseClaims(r *http.Request) (*SessionClaims, error) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			return nil, fmt.Errorf("unsupported authorization scheme")
		}
		return c.jwt.Parse(token)
	}
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, ErrNoToken
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, ErrNoToken
	}
	return c.jwt.Parse(authCookie.Value + "." + signCookie.Value)
}
