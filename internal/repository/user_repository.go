package repository

import (
	"errors"
	"strings"
	"time"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. The plaintext password is hashed here so no
// caller can persist an unhashed one.
func (r *UserRepository) Create(user *model.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.Email = strings.ToLower(user.Email)
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByVerificationToken only matches tokens whose expiry is still in the
// future; expired tokens behave as if they never existed.
func (r *UserRepository) FindByVerificationToken(token string) (*model.User, error) {
	var user model.User
	err := r.db.
		Where("verification_token = ? AND verification_token_expiry > ?", token, time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByResetToken(token string) (*model.User, error) {
	var user model.User
	err := r.db.
		Where("reset_password_token = ? AND reset_password_expiry > ?", token, time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// UpdatePassword re-hashes and persists a new password together with any
// token fields already cleared on the user.
func (r *UserRepository) UpdatePassword(user *model.User, plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return r.db.Save(user).Error
}

func (r *UserRepository) List(role string) ([]model.User, error) {
	var users []model.User
	query := r.db.Order("created_at DESC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Delete(id uint) error {
	result := r.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CountByRole(role model.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountVerified() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_email_verified = ?", true).Count(&count).Error
	return count, err
}

func (r *UserRepository) AddSavedBlog(user *model.User, blog *model.Blog) error {
	return r.db.Model(user).Association("SavedBlogs").Append(blog)
}

func (r *UserRepository) RemoveSavedBlog(user *model.User, blog *model.Blog) error {
	return r.db.Model(user).Association("SavedBlogs").Delete(blog)
}

func (r *UserRepository) ListSavedBlogs(user *model.User) ([]model.Blog, error) {
	var blogs []model.Blog
	err := r.db.Model(user).Preload("Author").Association("SavedBlogs").Find(&blogs)
	return blogs, err
}
