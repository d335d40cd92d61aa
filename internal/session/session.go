// Package session holds the authenticated identity for one browser session.
// The identity is persisted as a single JSON blob under a fixed key and
// rehydrated when the manager is built; there is no token and no expiry, the
// session is trusted until an explicit logout.
package session

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/techstore/storefront/pkg/models"
)

// AdminEmail is always granted admin rights regardless of the server's
// is_admin flag. Inherited behavior from the previous storefront; do not
// remove without checking the back-office still has an admin account.
const AdminEmail = "admin@techstore.com"

// StorageKey is the fixed name the identity blob is persisted under.
const StorageKey = "techstore_user"

type Identity struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// Store persists the identity blob between requests.
type Store interface {
	Load() (*Identity, error)
	Save(*Identity) error
	Clear() error
}

// LoginAPI is the slice of the store API the manager needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*models.Client, error)
}

type Manager struct {
	api     LoginAPI
	store   Store
	logger  *logrus.Logger
	current *Identity
}

// NewManager builds a manager and rehydrates the identity from the store; a
// missing or unreadable blob leaves the session unauthenticated.
func NewManager(api LoginAPI, store Store, logger *logrus.Logger) *Manager {
	m := &Manager{api: api, store: store, logger: logger}
	if identity, err := store.Load(); err == nil && identity != nil {
		m.current = identity
	}
	return m
}

func (m *Manager) Current() *Identity {
	return m.current
}

func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

// Login authenticates against the store API. On success the identity is held
// in memory, persisted, and returned. On any failure — transport error or
// rejected credentials — it returns nil; errors never escape this boundary.
func (m *Manager) Login(ctx context.Context, email, password string) *Identity {
	client, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.logger.WithError(err).WithField("email", email).Warn("Login failed")
		return nil
	}
	if client == nil || client.ID == 0 {
		return nil
	}

	identity := &Identity{
		ID:      client.ID,
		Email:   client.Email,
		Name:    client.Name,
		IsAdmin: client.IsAdmin || email == AdminEmail,
	}
	m.current = identity
	if err := m.store.Save(identity); err != nil {
		m.logger.WithError(err).Warn("Failed to persist session identity")
	}

	m.logger.WithFields(logrus.Fields{
		"client_id": identity.ID,
		"is_admin":  identity.IsAdmin,
	}).Info("Session established")
	return identity
}

// Logout clears both the in-memory identity and the persisted blob.
func (m *Manager) Logout() {
	m.current = nil
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("Failed to clear persisted session")
	}
}
