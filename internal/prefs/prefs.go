// Package prefs stores per-browser UI preferences in a signed, encrypted cookie.
package prefs

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// Project list orderings.
const (
	SortLastModified = "last_modified"
	SortName         = "name"
)

// ErrInvalidSecret is returned when the cookie secret is shorter than 64 bytes.
var ErrInvalidSecret = errors.New("prefs secret must be at least 64 bytes")

// Preferences holds the UI settings stored in the cookie.
type Preferences struct {
	SidebarCollapsed bool      `json:"sidebar_collapsed"`
	ProjectSort      string    `json:"project_sort"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Defaults returns the preferences used when no cookie is present.
func Defaults() Preferences {
	return Preferences{ProjectSort: SortLastModified}
}

// Normalize replaces unknown values with defaults.
func (p Preferences) Normalize() Preferences {
	switch p.ProjectSort {
	case SortLastModified, SortName:
	default:
		p.ProjectSort = SortLastModified
	}
	return p
}

// Store manages the preferences cookie.
type Store struct {
	cookie *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

// NewStore creates a store. The secret must be at least 64 bytes: the first
// 32 are the hash key, the next 32 the block key.
func NewStore(secret string, maxAge time.Duration, secure bool) (*Store, error) {
	if len(secret) < 64 {
		return nil, ErrInvalidSecret
	}
	hashKey := []byte(secret)[:32]
	blockKey := []byte(secret)[32:64]

	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxAge.Seconds()))

	return &Store{
		cookie: sc,
		name:   "vpmshell_prefs",
		maxAge: int(maxAge.Seconds()),
		secure: secure,
	}, nil
}

// Get decodes the preferences cookie from the request.
func (s *Store) Get(r *http.Request) (Preferences, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return Defaults(), err
	}

	var p Preferences
	if err := s.cookie.Decode(s.name, cookie.Value, &p); err != nil {
		return Defaults(), err
	}
	return p.Normalize(), nil
}

// Set writes the preferences cookie.
func (s *Store) Set(w http.ResponseWriter, p Preferences) error {
	p = p.Normalize()
	p.UpdatedAt = time.Now().UTC()

	encoded, err := s.cookie.Encode(s.name, p)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the preferences cookie.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey struct{}

// WithContext attaches preferences to ctx.
func WithContext(ctx context.Context, p Preferences) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the preferences on ctx, or Defaults.
func FromContext(ctx context.Context) Preferences {
	p, ok := ctx.Value(contextKey{}).(Preferences)
	if !ok {
		return Defaults()
	}
	return p
}
