package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/estampaviva/estampa-api/internal/repository"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// AdminAuthService authenticates store administrators.
type AdminAuthService struct {
	admins *repository.AdminUserRepository
}

// NewAdminAuthService constructs an AdminAuthService.
func NewAdminAuthService(admins *repository.AdminUserRepository) *AdminAuthService {
	return &AdminAuthService{admins: admins}
}

// LoginResult carries the issued token and basic profile data.
type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login verifies the credentials against the stored bcrypt hash and issues a
// JWT. Unknown emails and wrong passwords return the same error so the
// endpoint leaks nothing about which accounts exist.
func (s *AdminAuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.admins.GetByEmail(email)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Email: user.Email, Name: user.Name}, nil
}
