package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/auth"
	"github.com/devanpatel28/codegrin-backend/internal/models"
	"github.com/devanpatel28/codegrin-backend/internal/repositories"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type AuthService interface {
	Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error)
	Profile(db *gorm.DB, adminID uint) (*dto.AdminProfile, error)
	UpdateName(db *gorm.DB, adminID uint, req dto.UpdateAdminNameRequest) (*dto.AdminProfile, error)
}

type authService struct {
	adminRepo repositories.AdminRepository
}

func NewAuthService(adminRepo repositories.AdminRepository) AuthService {
	return &authService{adminRepo: adminRepo}
}

func (s *authService) Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err, "failed to look up admin")
	}

	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, apperrors.InternalError(err, "failed to issue token")
	}

	return &dto.LoginResponse{
		Token: token,
		Admin: toAdminProfile(admin),
	}, nil
}

func (s *authService) Profile(db *gorm.DB, adminID uint) (*dto.AdminProfile, error) {
	admin, err := s.adminRepo.FindByID(db, adminID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrNotFound(err, "admin", "admin not found")
		}
		return nil, apperrors.DatabaseError(err, "failed to look up admin")
	}
	profile := toAdminProfile(admin)
	return &profile, nil
}

func (s *authService) UpdateName(db *gorm.DB, adminID uint, req dto.UpdateAdminNameRequest) (*dto.AdminProfile, error) {
	if _, err := s.adminRepo.FindByID(db, adminID); err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrNotFound(err, "admin", "admin not found")
		}
		return nil, apperrors.DatabaseError(err, "failed to look up admin")
	}
	if err := s.adminRepo.UpdateName(db, adminID, req.FirstName, req.LastName); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to update admin name")
	}
	return s.Profile(db, adminID)
}

func toAdminProfile(admin *models.Admin) dto.AdminProfile {
	return dto.AdminProfile{
		ID:        admin.ID,
		FirstName: admin.Firstname,
		LastName:  admin.Lastname,
		Email:     admin.Email,
	}
}
