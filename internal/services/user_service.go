package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"safetour/internal/models"
)

// UserService is the in-memory registry of known users. Identity and
// authentication live with an external collaborator; this keeps just enough
// to serve registration and the admin listing.
type UserService struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserService() *UserService {
	return &UserService{users: make(map[string]models.User)}
}

// Register stores a new tourist under a fresh opaque id.
func (s *UserService) Register(name string, phone *string) models.User {
	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Role:      "tourist",
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return user
}

// Get returns the user, if registered.
func (s *UserService) Get(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// List returns a copy of all registered users.
func (s *UserService) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users
}

// Count returns the number of registered users.
func (s *UserService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
