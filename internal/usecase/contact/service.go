package contact

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"riya-portal/internal/domain/contact"
	"riya-portal/internal/ws"
)

var (
	ErrInvalidInput = errors.New("all fields are mandatory")
	ErrNotFound     = errors.New("contact message not found")
	ErrInternal     = errors.New("internal error")
)

type EventPublisher interface {
	Publish(evt ws.Event)
}

type CreateInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type Service struct {
	messages contact.Repository
	events   EventPublisher
	logger   *log.Logger

	now func() time.Time
}

func NewService(messages contact.Repository, events EventPublisher, logger *log.Logger) *Service {
	return &Service{messages: messages, events: events, logger: logger, now: time.Now}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (contact.Message, error) {
	m := contact.Message{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if m.Name == "" || m.Email == "" || m.Phone == "" || m.Subject == "" || m.Message == "" {
		return contact.Message{}, ErrInvalidInput
	}
	m.CreatedAt = s.now().UTC()

	id, err := s.messages.Create(ctx, m)
	if err != nil {
		s.logf("[Contact] create failed err=%v", err)
		return contact.Message{}, ErrInternal
	}
	m.ID = id

	if s.events != nil {
		s.events.Publish(ws.NewEvent(ws.EventContactReceived, id.String(), m.Subject, m.CreatedAt))
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]contact.Message, error) {
	items, err := s.messages.List(ctx)
	if err != nil {
		s.logf("[Contact] list failed err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			return ErrNotFound
		}
		s.logf("[Contact] delete failed id=%s err=%v", id, err)
		return ErrInternal
	}
	return nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
