// Package repository wraps gorm access behind constructors so handlers
// never touch a global connection.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/errs"
	"github.com/milassets/backend/models"
)

// Users is the credential store: user records plus password hashing rules.
type Users struct {
	db *gorm.DB
}

// NewUsers creates a user repository over db.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create hashes the plaintext password and persists the user. Fails with
// errs.ErrDuplicate when the username is taken.
func (r *Users) Create(username, password, name, base string, role models.Role) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Base:         base,
		Role:         role,
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

// Verify checks username/password. Unknown user and wrong password both
// return errs.ErrInvalidCredentials so login can't be used to enumerate usernames.
func (r *Users) Verify(username, password string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, errs.ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID returns a user by primary key.
func (r *Users) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns a user by username.
func (r *Users) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by creation time.
func (r *Users) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user by id, guarding against self-deletion.
func (r *Users) Delete(requesterID, id uint) error {
	if requesterID == id {
		return errs.ErrSelfDeletion
	}
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Bases returns the distinct bases users belong to.
func (r *Users) Bases() ([]string, error) {
	var bases []string
	if err := r.db.Model(&models.User{}).
		Distinct().
		Where("base <> ''").
		Order("base ASC").
		Pluck("base", &bases).Error; err != nil {
		return nil, err
	}
	return bases, nil
}
