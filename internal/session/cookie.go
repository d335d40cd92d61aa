package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
)

// CookieStore persists the identity blob in an HTTP cookie, the server-side
// analog of the old storefront's browser storage. One store is built per
// request pair.
type CookieStore struct {
	w http.ResponseWriter
	r *http.Request
}

func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r}
}

var errNoSession = errors.New("no persisted session")

func (s *CookieStore) Load() (*Identity, error) {
	cookie, err := s.r.Cookie(StorageKey)
	if err != nil {
		return nil, errNoSession
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil, err
	}
	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *CookieStore) Save(identity *Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     StorageKey,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
	})
	return nil
}

func (s *CookieStore) Clear() error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     StorageKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return nil
}
