package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fleetworks/transport-backend/internal/auth"
	"github.com/fleetworks/transport-backend/internal/models"
)

// Store is the entity gateway: every mutation runs its precondition checks,
// the write and any cascade inside one transaction, so a failing call leaves
// no partial state behind.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Authenticate looks the user up by exact login match and verifies the
// credential. Both failure modes collapse into ErrInvalidCredentials.
func (s *Store) Authenticate(login, password string) (auth.Principal, error) {
	var user models.User
	if err := s.db.Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Principal{}, ErrInvalidCredentials
		}
		return auth.Principal{}, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return auth.Principal{}, ErrInvalidCredentials
	}
	return auth.Principal{UserID: user.ID, Role: user.Role, DisplayName: user.FullName}, nil
}

// GetUser returns a single user row, for the profile endpoint.
func (s *Store) GetUser(id uint) (models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
