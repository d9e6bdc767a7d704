package service

import (
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/repository"
	"edu_portfolio_backend/internal/util"
)

type UserService struct {
	users     *repository.UserRepository
	courses   *repository.CourseRepository
	blogs     *repository.BlogRepository
	inquiries *repository.InquiryRepository
}

func NewUserService(
	users *repository.UserRepository,
	courses *repository.CourseRepository,
	blogs *repository.BlogRepository,
	inquiries *repository.InquiryRepository,
) *UserService {
	return &UserService{
		users:     users,
		courses:   courses,
		blogs:     blogs,
		inquiries: inquiries,
	}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	return s.users.FindByID(id)
}

func (s *UserService) ListUsers(role string) ([]model.User, error) {
	if role != "" && !model.ValidRole(role) {
		return nil, util.ErrInvalidRole
	}
	return s.users.List(role)
}

// ProfileUpdate carries the fields a user may change about themselves.
type ProfileUpdate struct {
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	Specialization string `json:"specialization"`
	ProfilePicture string `json:"profilePicture"`
}

func (s *UserService) UpdateProfile(user *model.User, update ProfileUpdate) (*model.User, error) {
	if update.Name != "" {
		user.Name = update.Name
	}
	user.Bio = update.Bio
	user.Specialization = update.Specialization
	if update.ProfilePicture != "" {
		user.ProfilePicture = update.ProfilePicture
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole lets an admin change another user's role. Admins cannot change
// their own role, which keeps at least one admin around.
func (s *UserService) UpdateRole(admin *model.User, targetID uint, role string) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, util.ErrInvalidRole
	}
	if admin.ID == targetID {
		return nil, util.ErrOwnRoleChange
	}

	user, err := s.users.FindByID(targetID)
	if err != nil {
		return nil, err
	}
	user.Role = model.UserRole(role)
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(admin *model.User, targetID uint) error {
	if admin.ID == targetID {
		return util.ErrPermissionDenied
	}
	return s.users.Delete(targetID)
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	Students      int64 `json:"students"`
	Teachers      int64 `json:"teachers"`
	VerifiedUsers int64 `json:"verifiedUsers"`
	Courses       int64 `json:"courses"`
	Blogs         int64 `json:"blogs"`
	NewInquiries  int64 `json:"newInquiries"`
}

func (s *UserService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Students, err = s.users.CountByRole(model.Student); err != nil {
		return nil, err
	}
	if stats.Teachers, err = s.users.CountByRole(model.Teacher); err != nil {
		return nil, err
	}
	if stats.VerifiedUsers, err = s.users.CountVerified(); err != nil {
		return nil, err
	}
	if stats.Courses, err = s.courses.Count(); err != nil {
		return nil, err
	}
	if stats.Blogs, err = s.blogs.Count(); err != nil {
		return nil, err
	}
	if stats.NewInquiries, err = s.inquiries.CountByStatus(model.InquiryNew); err != nil {
		return nil, err
	}
	return stats, nil
}
