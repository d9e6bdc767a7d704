package repository

import (
	"errors"
	"strings"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"

	"gorm.io/gorm"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Create(subscriber *model.Subscriber) error {
	subscriber.Email = strings.ToLower(subscriber.Email)
	return r.db.Create(subscriber).Error
}

func (r *SubscriberRepository) FindByEmail(email string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&subscriber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubscriberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *SubscriberRepository) List(status model.SubscriberStatus) ([]model.Subscriber, error) {
	var subscribers []model.Subscriber
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (r *SubscriberRepository) Update(subscriber *model.Subscriber) error {
	return r.db.Save(subscriber).Error
}

func (r *SubscriberRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Subscriber{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrSubscriberNotFound
	}
	return nil
}
