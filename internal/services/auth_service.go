package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/config"
	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/pkg/crypto"
	jwtpkg "github.com/bookhaven/backend/pkg/jwt"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login authenticates an admin account and returns a signed token
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Validation("email and password are required")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Auth("invalid credentials")
		}
		return "", nil, apperr.Internal(err)
	}

	if !crypto.CheckPassword(password, user.Password) {
		return "", nil, apperr.Auth("invalid credentials")
	}

	token, err := jwtpkg.GenerateToken(user.ID.String(), user.Name, user.Role, s.cfg.JWTSecret, s.cfg.JWTTokenDuration)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, &user, nil
}

// CreateDefaultAdmin seeds the admin account from config if it is absent
func (s *AuthService) CreateDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", s.cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPassword(s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.cfg.AdminName,
		Email:    s.cfg.AdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("Created default admin account %s", admin.Email)
	return nil
}
