package repository

import (
	"errors"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"

	"gorm.io/gorm"
)

type SuccessStoryRepository struct {
	db *gorm.DB
}

func NewSuccessStoryRepository(db *gorm.DB) *SuccessStoryRepository {
	return &SuccessStoryRepository{db: db}
}

func (r *SuccessStoryRepository) Create(story *model.SuccessStory) error {
	return r.db.Create(story).Error
}

func (r *SuccessStoryRepository) FindByID(id uint) (*model.SuccessStory, error) {
	var story model.SuccessStory
	err := r.db.First(&story, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *SuccessStoryRepository) List(featuredOnly bool) ([]model.SuccessStory, error) {
	var stories []model.SuccessStory
	query := r.db.Order("created_at DESC")
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}
	if err := query.Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *SuccessStoryRepository) Update(story *model.SuccessStory) error {
	return r.db.Save(story).Error
}

func (r *SuccessStoryRepository) Delete(id uint) error {
	result := r.db.Delete(&model.SuccessStory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrStoryNotFound
	}
	return nil
}
