package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/auth"
	"github.com/devanpatel28/codegrin-backend/internal/models"
	"github.com/devanpatel28/codegrin-backend/internal/repositories"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

// fakeAdminRepo is an in-memory AdminRepository. Like the MySQL-backed
// repository, UpdateName succeeds whether or not the stored values change.
type fakeAdminRepo struct {
	admins map[uint]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[uint]*models.Admin{}}
}

func (f *fakeAdminRepo) seed(id uint, firstname, lastname, email, password string) *models.Admin {
	hash, _ := auth.HashPassword(password)
	admin := &models.Admin{
		ID:           id,
		Firstname:    firstname,
		Lastname:     lastname,
		Email:        email,
		PasswordHash: hash,
	}
	f.admins[id] = admin
	return admin
}

func (f *fakeAdminRepo) FindByEmail(_ *gorm.DB, email string) (*models.Admin, error) {
	for _, admin := range f.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, repositories.ErrAdminNotFound
}

func (f *fakeAdminRepo) FindByID(_ *gorm.DB, id uint) (*models.Admin, error) {
	admin, ok := f.admins[id]
	if !ok {
		return nil, repositories.ErrAdminNotFound
	}
	return admin, nil
}

func (f *fakeAdminRepo) UpdateName(_ *gorm.DB, id uint, firstname, lastname string) error {
	if admin, ok := f.admins[id]; ok {
		admin.Firstname = firstname
		admin.Lastname = lastname
	}
	return nil
}

func TestLoginIssuesToken(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	repo := newFakeAdminRepo()
	repo.seed(1, "Dev", "Patel", "admin@codegrin.com", "hunter22")
	service := NewAuthService(repo)

	resp, err := service.Login(nil, dto.LoginRequest{Email: "admin@codegrin.com", Password: "hunter22"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@codegrin.com", resp.Admin.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	repo := newFakeAdminRepo()
	repo.seed(1, "Dev", "Patel", "admin@codegrin.com", "hunter22")
	service := NewAuthService(repo)

	_, err := service.Login(nil, dto.LoginRequest{Email: "admin@codegrin.com", Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	service := NewAuthService(newFakeAdminRepo())

	_, err := service.Login(nil, dto.LoginRequest{Email: "ghost@codegrin.com", Password: "hunter22"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// Resubmitting the current name is a no-op at the SQL layer but must still
// succeed with the stored profile.
func TestUpdateNameKeepsCurrentValues(t *testing.T) {
	repo := newFakeAdminRepo()
	repo.seed(1, "Dev", "Patel", "admin@codegrin.com", "hunter22")
	service := NewAuthService(repo)

	profile, err := service.UpdateName(nil, 1, dto.UpdateAdminNameRequest{FirstName: "Dev", LastName: "Patel"})
	require.NoError(t, err)

	assert.Equal(t, "Dev", profile.FirstName)
	assert.Equal(t, "Patel", profile.LastName)
}

func TestUpdateNameUnknownAdmin(t *testing.T) {
	service := NewAuthService(newFakeAdminRepo())

	_, err := service.UpdateName(nil, 42, dto.UpdateAdminNameRequest{FirstName: "Dev", LastName: "Patel"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
