package service

import (
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/repository"
	"edu_portfolio_backend/internal/util"
)

type BlogService struct {
	blogs *repository.BlogRepository
	users *repository.UserRepository
}

func NewBlogService(blogs *repository.BlogRepository, users *repository.UserRepository) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

func (s *BlogService) ListBlogs(category string, status model.BlogStatus, notificationsOnly bool) ([]model.Blog, error) {
	return s.blogs.List(category, status, notificationsOnly)
}

// BlogView pairs a blog with its like count.
type BlogView struct {
	*model.Blog
	LikeCount int64 `json:"likeCount"`
	Liked     bool  `json:"liked"`
}

// GetBlog loads a blog and bumps its view counter.
func (s *BlogService) GetBlog(id uint, requester *model.User) (*BlogView, error) {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.blogs.IncrementViewCount(blog.ID); err == nil {
		blog.ViewCount++
	}

	view := &BlogView{Blog: blog}
	if view.LikeCount, err = s.blogs.CountLikes(blog.ID); err != nil {
		return nil, err
	}
	if requester != nil {
		if view.Liked, err = s.blogs.HasLiked(blog.ID, requester.ID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *BlogService) CreateBlog(blog *model.Blog, author *model.User) (*model.Blog, error) {
	blog.AuthorID = author.ID
	if blog.Status == "" {
		blog.Status = model.BlogPublished
	}
	if err := s.blogs.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) UpdateBlog(id uint, updates *model.Blog, user *model.User) (*model.Blog, error) {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && blog.AuthorID != user.ID {
		return nil, util.ErrPermissionDenied
	}

	blog.Title = updates.Title
	blog.Content = updates.Content
	blog.Excerpt = updates.Excerpt
	blog.Tags = updates.Tags
	blog.Category = updates.Category
	blog.IsNotification = updates.IsNotification
	if updates.CoverImage != "" {
		blog.CoverImage = updates.CoverImage
	}
	if updates.Status != "" {
		blog.Status = updates.Status
	}
	if err := s.blogs.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) DeleteBlog(id uint, user *model.User) error {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return err
	}
	if !user.IsAdmin() && blog.AuthorID != user.ID {
		return util.ErrPermissionDenied
	}
	return s.blogs.Delete(id)
}

// ToggleLike flips the requester's like on a blog and returns the new count.
func (s *BlogService) ToggleLike(id uint, user *model.User) (liked bool, count int64, err error) {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return false, 0, err
	}

	hasLiked, err := s.blogs.HasLiked(blog.ID, user.ID)
	if err != nil {
		return false, 0, err
	}
	if hasLiked {
		err = s.blogs.RemoveLike(blog, user)
	} else {
		err = s.blogs.AddLike(blog, user)
	}
	if err != nil {
		return false, 0, err
	}

	count, err = s.blogs.CountLikes(blog.ID)
	return !hasLiked, count, err
}

func (s *BlogService) AddComment(id uint, user *model.User, content string) (*model.BlogComment, error) {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return nil, err
	}

	comment := &model.BlogComment{
		BlogID:   blog.ID,
		AuthorID: user.ID,
		Content:  content,
	}
	if err := s.blogs.AddComment(comment); err != nil {
		return nil, err
	}
	comment.Author = user
	return comment, nil
}

func (s *BlogService) SaveBlog(id uint, user *model.User) error {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return err
	}
	return s.users.AddSavedBlog(user, blog)
}

func (s *BlogService) UnsaveBlog(id uint, user *model.User) error {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return err
	}
	return s.users.RemoveSavedBlog(user, blog)
}

func (s *BlogService) ListSavedBlogs(user *model.User) ([]model.Blog, error) {
	return s.users.ListSavedBlogs(user)
}
