package repository

import (
	"errors"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"

	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

// FindByID loads the full course tree. Sections and videos come back in
// ascending sort order so the client never has to reorder them.
func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.
		Preload("Author").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Sections.Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.User").
		First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(category string, status model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	query := r.db.Preload("Author").Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) CreateSection(section *model.Section) error {
	return r.db.Create(section).Error
}

// FindSection looks a section up within its course so a section id from
// another course can never be addressed.
func (r *CourseRepository) FindSection(courseID, sectionID uint) (*model.Section, error) {
	var section model.Section
	err := r.db.
		Where("id = ? AND course_id = ?", sectionID, courseID).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&section).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *CourseRepository) UpdateSection(section *model.Section) error {
	return r.db.Save(section).Error
}

func (r *CourseRepository) DeleteSection(section *model.Section) error {
	return r.db.Delete(section).Error
}

func (r *CourseRepository) CreateVideo(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *CourseRepository) FindVideo(sectionID, videoID uint) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ? AND section_id = ?", videoID, sectionID).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *CourseRepository) UpdateVideo(video *model.Video) error {
	return r.db.Save(video).Error
}

func (r *CourseRepository) DeleteVideo(video *model.Video) error {
	return r.db.Delete(video).Error
}

func (r *CourseRepository) AddComment(comment *model.CourseComment) error {
	return r.db.Create(comment).Error
}

func (r *CourseRepository) ListComments(courseID uint) ([]model.CourseComment, error) {
	var comments []model.CourseComment
	err := r.db.
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Preload("User").
		Find(&comments).Error
	return comments, err
}

func (r *CourseRepository) Enroll(course *model.Course, user *model.User) error {
	return r.db.Model(course).Association("EnrolledStudents").Append(user)
}

func (r *CourseRepository) IsEnrolled(courseID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("course_enrollments").
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) ListEnrolled(userID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.
		Joins("JOIN course_enrollments ce ON ce.course_id = courses.id").
		Where("ce.user_id = ?", userID).
		Preload("Author").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Course{}).Count(&count).Error
	return count, err
}
