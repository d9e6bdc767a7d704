package service

import (
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/repository"
)

type SuccessStoryService struct {
	stories *repository.SuccessStoryRepository
}

func NewSuccessStoryService(stories *repository.SuccessStoryRepository) *SuccessStoryService {
	return &SuccessStoryService{stories: stories}
}

func (s *SuccessStoryService) ListStories(featuredOnly bool) ([]model.SuccessStory, error) {
	return s.stories.List(featuredOnly)
}

func (s *SuccessStoryService) GetStory(id uint) (*model.SuccessStory, error) {
	return s.stories.FindByID(id)
}

func (s *SuccessStoryService) CreateStory(story *model.SuccessStory) (*model.SuccessStory, error) {
	if err := s.stories.Create(story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *SuccessStoryService) UpdateStory(id uint, updates *model.SuccessStory) (*model.SuccessStory, error) {
	story, err := s.stories.FindByID(id)
	if err != nil {
		return nil, err
	}
	story.Name = updates.Name
	story.Score = updates.Score
	story.University = updates.University
	story.Quote = updates.Quote
	story.Featured = updates.Featured
	if updates.Image != "" {
		story.Image = updates.Image
	}
	if err := s.stories.Update(story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *SuccessStoryService) DeleteStory(id uint) error {
	return s.stories.Delete(id)
}
