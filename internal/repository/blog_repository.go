package repository

import (
	"errors"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"

	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(blog *model.Blog) error {
	return r.db.Create(blog).Error
}

func (r *BlogRepository) FindByID(id uint) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author").
		First(&blog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrBlogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) List(category string, status model.BlogStatus, notificationsOnly bool) ([]model.Blog, error) {
	var blogs []model.Blog
	query := r.db.Preload("Author").Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if notificationsOnly {
		query = query.Where("is_notification = ?", true)
	}
	if err := query.Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) Update(blog *model.Blog) error {
	return r.db.Save(blog).Error
}

func (r *BlogRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Blog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *BlogRepository) AddComment(comment *model.BlogComment) error {
	return r.db.Create(comment).Error
}

func (r *BlogRepository) HasLiked(blogID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("blog_likes").
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *BlogRepository) AddLike(blog *model.Blog, user *model.User) error {
	return r.db.Model(blog).Association("Likes").Append(user)
}

func (r *BlogRepository) RemoveLike(blog *model.Blog, user *model.User) error {
	return r.db.Model(blog).Association("Likes").Delete(user)
}

func (r *BlogRepository) CountLikes(blogID uint) (int64, error) {
	var count int64
	err := r.db.Table("blog_likes").Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

func (r *BlogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Blog{}).Count(&count).Error
	return count, err
}
