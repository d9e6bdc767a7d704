package repository

import (
	"errors"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"

	"gorm.io/gorm"
)

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(inquiry *model.Inquiry) error {
	return r.db.Create(inquiry).Error
}

func (r *InquiryRepository) FindByID(id uint) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := r.db.First(&inquiry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *InquiryRepository) List(status model.InquiryStatus) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *InquiryRepository) Update(inquiry *model.Inquiry) error {
	return r.db.Save(inquiry).Error
}

func (r *InquiryRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Inquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) CountByStatus(status model.InquiryStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Inquiry{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
