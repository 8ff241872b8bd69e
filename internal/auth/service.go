package auth

import (
	"log/slog"

	"github.com/ardiansn/employee-management/internal"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*AuthResponse, error)
	Login(dto LoginDTO) (*AuthResponse, error)
	Profile(userID int64) (*User, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type RepositoryAPI interface {
	Create(user *User) error
	GetByEmail(email string) (*User, error)
	GetByID(id int64) (*User, error)
}

// Service performs registration, credential verification and token issuance.
type Service struct {
	repo       RepositoryAPI
	tokenGen   TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a user with the "user" role regardless of what the caller
// asked for. Self-service admin elevation was a hole in the previous design.
func (s *Service) Register(dto RegisterDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to check existing user", err)
	}
	if existing != nil {
		return nil, internal.ErrUserEmailTaken
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("register: password hashing failed", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Email:        dto.Email,
		PasswordHash: hash,
		Name:         dto.Name,
		Role:         RoleUser,
	}

	if err := s.repo.Create(user); err != nil {
		s.logger.Error("register: failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	token, err := s.tokenGen.IssueToken(user)
	if err != nil {
		s.logger.Error("register: token issuance failed", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	return &AuthResponse{User: user, Token: token}, nil
}

// Login returns the same error for an unknown email and a wrong password so
// responses do not reveal which emails are registered.
func (s *Service) Login(dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("login: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGen.IssueToken(user)
	if err != nil {
		s.logger.Error("login: token issuance failed", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)

	return &AuthResponse{User: user, Token: token}, nil
}

// Profile resolves the id from a valid token back to a row. A token can
// outlive its user, so not-found is still possible here.
func (s *Service) Profile(userID int64) (*User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("profile: lookup failed", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to load profile", err)
	}
	if user == nil {
		return nil, internal.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenGen.ValidateToken(tokenString)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
