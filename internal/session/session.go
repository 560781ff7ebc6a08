// Package session issues and reads the signed session cookie.
//
// The cookie carries an HS256 JWT naming the user and, in strong mode, a
// fingerprint of the client address and User-Agent. A cookie presented by
// a different client is rejected.
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kimhsiao/eboard/internal/crypto"
	"github.com/kimhsiao/eboard/internal/models"
)

var (
	// ErrNoSession is returned when the request carries no usable cookie.
	ErrNoSession = errors.New("no session")
	// ErrFingerprint is returned when a strong session is replayed by
	// another client.
	ErrFingerprint = errors.New("session fingerprint mismatch")
)

// Claims defines the information stored in the session token.
type Claims struct {
	UserID      string `json:"uid"`
	Fingerprint string `json:"fp,omitempty"`
	jwt.RegisteredClaims
}

// Options configures the cookie.
type Options struct {
	CookieName string
	MaxAge     time.Duration
	Strong     bool
	Secure     bool
}

// Manager issues and validates session cookies.
type Manager struct {
	key  []byte
	opts Options
	now  func() time.Time
}

// NewManager creates a Manager signing with a key derived from secret.
func NewManager(secret string, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "eboard_session"
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 30 * 24 * time.Hour
	}
	return &Manager{
		key:  crypto.DeriveKey("session", secret),
		opts: opts,
		now:  time.Now,
	}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.opts.CookieName
}

// Fingerprint digests the client address and User-Agent of r.
func (m *Manager) Fingerprint(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return crypto.Fingerprint(host, r.UserAgent())
}

// Issue sets a fresh session cookie for userID.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, userID string) error {
	issued := m.now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.opts.MaxAge)),
		},
	}
	if m.opts.Strong {
		claims.Fingerprint = m.Fingerprint(r)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  issued.Add(m.opts.MaxAge),
		MaxAge:   int(m.opts.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the user id of a valid session cookie on r.
func (m *Manager) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims,
		func(*jwt.Token) (interface{}, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || claims.UserID == "" {
		return "", ErrNoSession
	}
	if m.opts.Strong && claims.Fingerprint != m.Fingerprint(r) {
		return "", ErrFingerprint
	}
	return claims.UserID, nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the authenticated user.
func NewContext(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the authenticated user, if any.
func FromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok && u != nil
}
