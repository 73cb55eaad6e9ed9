package auth

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(user *User) error
	CreateBand(band *Band) error
	FindUserByUsername(username string) (*User, error)
	FindBandByUsername(username string) (*Band, error)
	FindBandByID(id uint) (*Band, error)
	UsernameTaken(username string) (bool, error)
	EmailTaken(email string) (bool, error)
	ListBands() ([]Band, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) CreateBand(band *Band) error {
	return r.db.Create(band).Error
}

func (r *repository) FindUserByUsername(username string) (*User, error) {
	var user User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindBandByUsername(username string) (*Band, error) {
	var band Band
	err := r.db.Where("username = ?", username).First(&band).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &band, nil
}

func (r *repository) FindBandByID(id uint) (*Band, error) {
	var band Band
	err := r.db.First(&band, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &band, nil
}

func (r *repository) UsernameTaken(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&Band{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) EmailTaken(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&Band{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListBands() ([]Band, error) {
	var bands []Band
	err := r.db.Order("band_name asc").Find(&bands).Error
	return bands, err
}
