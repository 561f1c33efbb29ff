package core

import "gorm.io/gorm"

type Repository interface {
	CreateUser(user *User) error
	GetUserByID(id uint64) (*User, error)
	GetUserByUsername(username string) (*User, error)
	UsernameTaken(username string, excludeID uint64) (bool, error)
	UpdateUser(user *User) error
	UpdatePasswordHash(userID uint64, hash string) error
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

func (r *repository) GetUserByID(id uint64) (*User, error) {
	var user User
	err := r.db.Where("id = ?", id).First(&user).Error
	return &user, err
}

func (r *repository) GetUserByUsername(username string) (*User, error) {
	var user User
	err := r.db.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *repository) UsernameTaken(username string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateUser(user *User) error {
	return r.db.Model(&User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}).Error
}

func (r *repository) UpdatePasswordHash(userID uint64, hash string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("password_hash", hash).Error
}
