package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vs-portfolio/portfolio/internal/metrics"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/validate"
)

// ContactNotifier is told about every stored contact submission.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, c model.Contact) error
}

const notifyTimeout = 15 * time.Second

type ContactService struct {
	repo      repository.ContactRepository
	notifier  ContactNotifier // nil disables notification
	validator *validate.Validator
	logger    *slog.Logger
	now       func() time.Time
}

func NewContactService(
	repo repository.ContactRepository,
	notifier ContactNotifier,
	validator *validate.Validator,
	logger *slog.Logger,
) *ContactService {
	return &ContactService{
		repo:      repo,
		notifier:  notifier,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates in and stores it with the current UTC time. After the
// write the notifier, if any, is called; its failure is only logged.
func (s *ContactService) Submit(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	in.Name, in.Email, in.Subject, in.Message = trim(in.Name), trim(in.Email), trim(in.Subject), trim(in.Message)
	if err := s.validator.Struct(&in); err != nil {
		metrics.RecordContact(metrics.OutcomeInvalid)
		return nil, err
	}

	c := &model.Contact{
		Name:        in.Name,
		Email:       in.Email,
		Subject:     in.Subject,
		Message:     in.Message,
		SubmittedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		metrics.RecordContact(metrics.OutcomeError)
		s.logger.Error("storing contact failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service/contact: storing: %w", err)
	}

	metrics.RecordContact(metrics.OutcomeSuccess)
	s.logger.Info("contact received",
		slog.String("id", c.ID),
		slog.String("email", c.Email),
	)

	s.notify(ctx, *c)
	return c, nil
}

func (s *ContactService) notify(ctx context.Context, c model.Contact) {
	if s.notifier == nil {
		return
	}

	// The request may finish before the mail server answers.
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyContact(nctx, c); err != nil {
		metrics.RecordNotification(metrics.OutcomeError)
		s.logger.Error("contact notification failed",
			slog.String("id", c.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	metrics.RecordNotification(metrics.OutcomeSuccess)
}
