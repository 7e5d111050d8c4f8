package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"movie-streaming-service/internal/auth"
	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// AdminUsername is the bootstrap administrator account.
const AdminUsername = "admin"

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(userID int64, username string, admin bool) (string, error)
}

// UserService handles registration, login and account administration.
type UserService struct {
	repo   repository.UserStore
	tokens TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserStore, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates a regular account and logs it in.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate(&req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Gender:       strings.TrimSpace(req.Gender),
		Age:          req.Age,
		Profession:   strings.TrimSpace(req.Profession),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("username %q is taken", req.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", u.ID)
	return s.session(u)
}

// Login checks credentials. Unknown users and wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate(&req); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}
	return s.session(u)
}

func (s *UserService) session(u *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{UserID: u.ID, Username: u.Username, Admin: u.IsAdmin, Token: token}, nil
}

// EnsureAdmin creates the bootstrap administrator if it does not exist yet.
func (s *UserService) EnsureAdmin(ctx context.Context, password string) error {
	_, err := s.repo.GetUserByUsername(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u := &models.User{Username: AdminUsername, PasswordHash: hash, IsAdmin: true}
	if err := s.repo.CreateUser(ctx, u); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	slog.Info("admin account created", "username", AdminUsername)
	return nil
}

// ListUsers returns one page of accounts.
func (s *UserService) ListUsers(ctx context.Context, params models.UserListParams) (*models.UserPage, error) {
	params.Validate()
	users, total, err := s.repo.ListUsers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}
	return &models.UserPage{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalPages:   totalPages,
		TotalResults: total,
		Data:         users,
	}, nil
}

// GetUser returns one account.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	return u, storeErr(err, fmt.Sprintf("user %d", id))
}

// CreateUser adds an account on behalf of an administrator.
func (s *UserService) CreateUser(ctx context.Context, req models.UserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate(&req); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, invalidArgument("password is required")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := userFromRequest(req)
	u.PasswordHash = hash
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, storeErr(err, fmt.Sprintf("user %q", req.Username))
	}
	return u, nil
}

// UpdateUser replaces an account's profile. An empty password keeps the old one.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req models.UserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate(&req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("user %d", id))
	}

	u := userFromRequest(req)
	u.ID = id
	u.PasswordHash = existing.PasswordHash
	if req.Password != "" {
		if u.PasswordHash, err = auth.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("username %q is taken", req.Username)
		}
		return nil, storeErr(err, fmt.Sprintf("user %d", id))
	}
	u.CreatedAt = existing.CreatedAt
	return u, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return storeErr(s.repo.DeleteUser(ctx, id), fmt.Sprintf("user %d", id))
}

func userFromRequest(req models.UserRequest) *models.User {
	return &models.User{
		Username:   req.Username,
		Gender:     strings.TrimSpace(req.Gender),
		Age:        req.Age,
		Profession: strings.TrimSpace(req.Profession),
		Phone:      strings.TrimSpace(req.Phone),
		IsAdmin:    req.Admin,
	}
}
