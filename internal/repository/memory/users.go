package memory

import (
	"context"
	"strings"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func userID(u *models.User) int64 { return u.ID }

// GetUser returns a user by id.
func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

// GetUserByUsername returns a user by login name.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

// CreateUser stores a new user. A taken username yields ErrDuplicate.
func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usernameTaken(u.Username, 0) {
		return repository.ErrDuplicate
	}
	u.ID = s.id()
	u.CreatedAt = time.Now()
	s.users[u.ID] = cloneUser(u)
	return nil
}

// UpdateUser replaces a user's profile.
func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if s.usernameTaken(u.Username, u.ID) {
		return repository.ErrDuplicate
	}
	u.CreatedAt = old.CreatedAt
	s.users[u.ID] = cloneUser(u)
	return nil
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ListUsers returns one page of users matching the substring filters.
func (s *Store) ListUsers(_ context.Context, params models.UserListParams) ([]models.User, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.User, 0)
	for _, u := range sortedByID(s.users, userID, cloneUser) {
		if params.Username != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(params.Username)) {
			continue
		}
		if params.Phone != "" && !strings.Contains(u.Phone, params.Phone) {
			continue
		}
		matched = append(matched, u)
	}

	total := len(matched)
	start := min(max(params.Page-1, 0)*params.PageSize, total)
	end := min(start+params.PageSize, total)
	return matched[start:end], total, nil
}

// AllUsers returns every user ordered by id.
func (s *Store) AllUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.users, userID, cloneUser), nil
}

func (s *Store) usernameTaken(name string, except int64) bool {
	for id, u := range s.users {
		if u.Username == name && id != except {
			return true
		}
	}
	return false
}
