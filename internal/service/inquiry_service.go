package service

import (
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/repository"
)

type InquiryService struct {
	inquiries *repository.InquiryRepository
}

func NewInquiryService(inquiries *repository.InquiryRepository) *InquiryService {
	return &InquiryService{inquiries: inquiries}
}

// SubmitInquiry records a contact-form submission. No auth required.
func (s *InquiryService) SubmitInquiry(inquiry *model.Inquiry) (*model.Inquiry, error) {
	if inquiry.Type == "" {
		inquiry.Type = "general"
	}
	inquiry.Status = model.InquiryNew
	if err := s.inquiries.Create(inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) ListInquiries(status model.InquiryStatus) ([]model.Inquiry, error) {
	return s.inquiries.List(status)
}

func (s *InquiryService) GetInquiry(id uint) (*model.Inquiry, error) {
	return s.inquiries.FindByID(id)
}

func (s *InquiryService) UpdateInquiry(id uint, status model.InquiryStatus, adminNotes string) (*model.Inquiry, error) {
	inquiry, err := s.inquiries.FindByID(id)
	if err != nil {
		return nil, err
	}
	if status != "" {
		inquiry.Status = status
	}
	if adminNotes != "" {
		inquiry.AdminNotes = adminNotes
	}
	if err := s.inquiries.Update(inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) DeleteInquiry(id uint) error {
	return s.inquiries.Delete(id)
}
