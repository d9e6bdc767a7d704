package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/repository"
	"edu_portfolio_backend/internal/util"
	"edu_portfolio_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	courseListCacheKey = "courses:list:%s:%s"
	courseListCacheTTL = 5 * time.Minute
)

type CourseService struct {
	courses *repository.CourseRepository
	redis   *redis.Client
}

func NewCourseService(courses *repository.CourseRepository, redisClient *redis.Client) *CourseService {
	return &CourseService{
		courses: courses,
		redis:   redisClient,
	}
}

// VisibleCourse returns the view of a course the requester is allowed to see.
// The author, admins and enrolled students see everything; everyone else gets
// a copy whose sections only carry the free-preview videos. Section metadata
// stays visible so the curriculum outline can still be rendered.
func VisibleCourse(course *model.Course, requester *model.User, enrolled bool) *model.Course {
	if requester != nil && (requester.IsAdmin() || requester.ID == course.AuthorID || enrolled) {
		return course
	}

	filtered := *course
	filtered.Sections = make([]model.Section, len(course.Sections))
	for i, section := range course.Sections {
		copied := section
		copied.Videos = nil
		for _, video := range section.Videos {
			if video.IsFree {
				copied.Videos = append(copied.Videos, video)
			}
		}
		filtered.Sections[i] = copied
	}
	return &filtered
}

// orderCurriculum sorts sections and their videos ascending. The repository
// already orders its preloads, this keeps the invariant when rows were
// touched after loading.
func orderCurriculum(course *model.Course) {
	sort.SliceStable(course.Sections, func(i, j int) bool {
		return course.Sections[i].Order < course.Sections[j].Order
	})
	for i := range course.Sections {
		videos := course.Sections[i].Videos
		sort.SliceStable(videos, func(a, b int) bool {
			return videos[a].Order < videos[b].Order
		})
	}
}

// ListCourses serves the course catalogue, cached in redis per filter pair.
func (s *CourseService) ListCourses(ctx context.Context, category string, status model.CourseStatus) ([]model.Course, error) {
	cacheKey := fmt.Sprintf(courseListCacheKey, category, status)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var courses []model.Course
			if json.Unmarshal([]byte(cached), &courses) == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.courses.List(category, status)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(courses); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, courseListCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache course list", zap.Error(err))
			}
		}
	}
	return courses, nil
}

func (s *CourseService) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, err := s.redis.Keys(ctx, "courses:list:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate course list cache", zap.Error(err))
	}
}

// GetCourse loads a course filtered down to what the requester may see.
// requester may be nil for anonymous reads.
func (s *CourseService) GetCourse(ctx context.Context, id uint, requester *model.User) (*model.Course, error) {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	orderCurriculum(course)

	enrolled := false
	if requester != nil {
		enrolled, err = s.courses.IsEnrolled(course.ID, requester.ID)
		if err != nil {
			return nil, err
		}
	}
	return VisibleCourse(course, requester, enrolled), nil
}

func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course, author *model.User) (*model.Course, error) {
	course.AuthorID = author.ID
	if course.Status == "" {
		course.Status = model.CourseDraft
	}
	if err := s.courses.Create(course); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return course, nil
}

// canManage gates course mutations to the author and admins.
func canManage(course *model.Course, user *model.User) bool {
	return user.IsAdmin() || course.AuthorID == user.ID
}

func (s *CourseService) UpdateCourse(ctx context.Context, id uint, updates *model.Course, user *model.User) (*model.Course, error) {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !canManage(course, user) {
		return nil, util.ErrPermissionDenied
	}

	course.Title = updates.Title
	course.Description = updates.Description
	course.Category = updates.Category
	course.Price = updates.Price
	course.Duration = updates.Duration
	course.Level = updates.Level
	course.Features = updates.Features
	course.Outcomes = updates.Outcomes
	if updates.Image != "" {
		course.Image = updates.Image
	}
	if updates.Status != "" {
		course.Status = updates.Status
	}

	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return course, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint, user *model.User) error {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return err
	}
	if !canManage(course, user) {
		return util.ErrPermissionDenied
	}
	if err := s.courses.Delete(id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

// Enroll adds the user to the course roster. StudentsCount only ever grows,
// there is no unenroll.
func (s *CourseService) Enroll(ctx context.Context, courseID uint, user *model.User) (*model.Course, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.courses.IsEnrolled(courseID, user.ID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}

	if err := s.courses.Enroll(course, user); err != nil {
		return nil, err
	}
	course.StudentsCount++
	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return course, nil
}

func (s *CourseService) ListEnrolled(ctx context.Context, user *model.User) ([]model.Course, error) {
	return s.courses.ListEnrolled(user.ID)
}

// AddComment stores a rating comment and recomputes the course mean.
func (s *CourseService) AddComment(ctx context.Context, courseID uint, user *model.User, text string, rating int) (*model.Course, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	comment := &model.CourseComment{
		CourseID: course.ID,
		UserID:   user.ID,
		Comment:  text,
		Rating:   rating,
	}
	if err := s.courses.AddComment(comment); err != nil {
		return nil, err
	}
	return s.recomputeRating(course)
}

func (s *CourseService) recomputeRating(course *model.Course) (*model.Course, error) {
	comments, err := s.courses.ListComments(course.ID)
	if err != nil {
		return nil, err
	}

	course.Rating, course.TotalRatings = meanRating(comments)
	course.Comments = comments

	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// meanRating returns the arithmetic mean and count, zero for no comments.
func meanRating(comments []model.CourseComment) (float64, int) {
	if len(comments) == 0 {
		return 0, 0
	}
	sum := 0
	for _, c := range comments {
		sum += c.Rating
	}
	return float64(sum) / float64(len(comments)), len(comments)
}

func (s *CourseService) AddSection(ctx context.Context, courseID uint, section *model.Section, user *model.User) (*model.Section, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !canManage(course, user) {
		return nil, util.ErrPermissionDenied
	}

	section.CourseID = course.ID
	if section.Order == 0 {
		section.Order = len(course.Sections) + 1
	}
	if err := s.courses.CreateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *CourseService) UpdateSection(ctx context.Context, courseID, sectionID uint, updates *model.Section, user *model.User) (*model.Section, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !canManage(course, user) {
		return nil, util.ErrPermissionDenied
	}

	section, err := s.courses.FindSection(courseID, sectionID)
	if err != nil {
		return nil, err
	}
	section.Title = updates.Title
	section.Description = updates.Description
	if updates.Order != 0 {
		section.Order = updates.Order
	}
	if err := s.courses.UpdateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *CourseService) DeleteSection(ctx context.Context, courseID, sectionID uint, user *model.User) error {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return err
	}
	if !canManage(course, user) {
		return util.ErrPermissionDenied
	}

	section, err := s.courses.FindSection(courseID, sectionID)
	if err != nil {
		return err
	}
	if err := s.courses.DeleteSection(section); err != nil {
		return err
	}

	course.LessonsCount -= len(section.Videos)
	if course.LessonsCount < 0 {
		course.LessonsCount = 0
	}
	return s.courses.Update(course)
}

func (s *CourseService) AddVideo(ctx context.Context, courseID, sectionID uint, video *model.Video, user *model.User) (*model.Video, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !canManage(course, user) {
		return nil, util.ErrPermissionDenied
	}

	section, err := s.courses.FindSection(courseID, sectionID)
	if err != nil {
		return nil, err
	}

	video.SectionID = section.ID
	if video.Order == 0 {
		video.Order = len(section.Videos) + 1
	}
	if err := s.courses.CreateVideo(video); err != nil {
		return nil, err
	}

	course.LessonsCount++
	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *CourseService) UpdateVideo(ctx context.Context, courseID, sectionID, videoID uint, updates *model.Video, user *model.User) (*model.Video, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !canManage(course, user) {
		return nil, util.ErrPermissionDenied
	}
	if _, err := s.courses.FindSection(courseID, sectionID); err != nil {
		return nil, err
	}

	video, err := s.courses.FindVideo(sectionID, videoID)
	if err != nil {
		return nil, err
	}
	video.Title = updates.Title
	if updates.URL != "" {
		video.URL = updates.URL
	}
	if updates.Thumbnail != "" {
		video.Thumbnail = updates.Thumbnail
	}
	if updates.Duration > 0 {
		video.Duration = updates.Duration
	}
	if updates.Order != 0 {
		video.Order = updates.Order
	}
	video.IsFree = updates.IsFree
	if err := s.courses.UpdateVideo(video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *CourseService) DeleteVideo(ctx context.Context, courseID, sectionID, videoID uint, user *model.User) error {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return err
	}
	if !canManage(course, user) {
		return util.ErrPermissionDenied
	}
	if _, err := s.courses.FindSection(courseID, sectionID); err != nil {
		return err
	}

	video, err := s.courses.FindVideo(sectionID, videoID)
	if err != nil {
		return err
	}
	if err := s.courses.DeleteVideo(video); err != nil {
		return err
	}

	if course.LessonsCount > 0 {
		course.LessonsCount--
	}
	return s.courses.Update(course)
}
