package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/models"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.Admin, error)
	FindByID(db *gorm.DB, id uint) (*models.Admin, error)
	UpdateName(db *gorm.DB, id uint, firstname, lastname string) error
}

type adminRepository struct{}

func NewAdminRepository() AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) FindByEmail(db *gorm.DB, email string) (*models.Admin, error) {
	var admin models.Admin
	err := db.Where("admin_email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByID(db *gorm.DB, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := db.First(&admin, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// UpdateName writes the admin's display name. RowsAffected is not checked;
// MySQL reports zero affected rows when the values are unchanged and the
// caller has already verified the row exists.
func (r *adminRepository) UpdateName(db *gorm.DB, id uint, firstname, lastname string) error {
	return db.Model(&models.Admin{}).Where("adminId = ?", id).Updates(map[string]interface{}{
		"admin_firstname": firstname,
		"admin_lastname":  lastname,
	}).Error
}
