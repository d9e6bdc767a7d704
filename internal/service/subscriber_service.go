package service

import (
	"errors"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/repository"
	"edu_portfolio_backend/internal/util"
	"edu_portfolio_backend/pkg/logger"

	"go.uber.org/zap"
)

// WelcomeMailer is the slice of the email service the subscription flow needs.
type WelcomeMailer interface {
	SendWelcomeEmail(to string) error
}

type SubscriberService struct {
	subscribers *repository.SubscriberRepository
	mailer      WelcomeMailer
}

func NewSubscriberService(subscribers *repository.SubscriberRepository, mailer WelcomeMailer) *SubscriberService {
	return &SubscriberService{subscribers: subscribers, mailer: mailer}
}

// Subscribe adds an email to the newsletter. Resubscribing after an
// unsubscribe reactivates the old row instead of failing on the unique index.
// The welcome email is best effort.
func (s *SubscriberService) Subscribe(email string) (*model.Subscriber, error) {
	subscriber, err := s.subscribers.FindByEmail(email)
	switch {
	case err == nil:
		if subscriber.Status == model.SubscriberActive {
			return nil, util.ErrAlreadySubscribed
		}
		subscriber.Status = model.SubscriberActive
		if err := s.subscribers.Update(subscriber); err != nil {
			return nil, err
		}
	case errors.Is(err, util.ErrSubscriberNotFound):
		subscriber = &model.Subscriber{Email: email, Status: model.SubscriberActive}
		if err := s.subscribers.Create(subscriber); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.mailer.SendWelcomeEmail(subscriber.Email); err != nil {
		logger.Log.Warn("Failed to send welcome email",
			zap.String("email", subscriber.Email),
			zap.Error(err),
		)
	}
	return subscriber, nil
}

func (s *SubscriberService) Unsubscribe(email string) error {
	subscriber, err := s.subscribers.FindByEmail(email)
	if err != nil {
		return err
	}
	subscriber.Status = model.SubscriberUnsubscribed
	return s.subscribers.Update(subscriber)
}

func (s *SubscriberService) ListSubscribers(status model.SubscriberStatus) ([]model.Subscriber, error) {
	return s.subscribers.List(status)
}

func (s *SubscriberService) DeleteSubscriber(id uint) error {
	return s.subscribers.Delete(id)
}
