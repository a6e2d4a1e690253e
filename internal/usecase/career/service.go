package career

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"riya-portal/internal/domain/application"
)

var (
	ErrNotFound          = errors.New("job application not found")
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidTransition = errors.New("status change not allowed")
	ErrInvalidInterview  = errors.New("invalid interview details")
	ErrInternal          = errors.New("internal error")
)

type InterviewInput struct {
	Date        string
	Time        string
	Location    string
	Mode        string
	MeetingLink string
}

// Service is the back-office view over submitted applications.
type Service struct {
	apps    application.Repository
	resumes application.ResumeStore
	logger  *log.Logger
}

func NewService(apps application.Repository, resumes application.ResumeStore, logger *log.Logger) *Service {
	return &Service{apps: apps, resumes: resumes, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]application.Application, error) {
	items, err := s.apps.List(ctx)
	if err != nil {
		s.logf("[Career] list applications failed err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	return app, nil
}

// Resume returns the application together with the stored resume bytes.
func (s *Service) Resume(ctx context.Context, id uuid.UUID) (application.Application, []byte, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return application.Application{}, nil, err
	}
	data, err := s.resumes.Get(ctx, app.Resume.Key)
	if err != nil {
		if errors.Is(err, application.ErrResumeNotFound) {
			return application.Application{}, nil, ErrNotFound
		}
		s.logf("[Career] load resume failed id=%s err=%v", id, err)
		return application.Application{}, nil, ErrInternal
	}
	return app, data, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to application.Status) (application.Application, error) {
	if !to.Valid() {
		return application.Application{}, ErrInvalidStatus
	}
	app, err := s.Get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if !app.Status.CanTransition(to) {
		return application.Application{}, ErrInvalidTransition
	}

	if err := s.apps.UpdateStatus(ctx, id, app.Status, to); err != nil {
		switch {
		case errors.Is(err, application.ErrStatusChanged):
			return application.Application{}, ErrInvalidTransition
		case errors.Is(err, application.ErrNotFound):
			return application.Application{}, ErrNotFound
		}
		s.logf("[Career] update status failed id=%s err=%v", id, err)
		return application.Application{}, ErrInternal
	}

	s.logf("[Career] status changed id=%s from=%s to=%s", id, app.Status, to)
	app.Status = to
	return app, nil
}

func (s *Service) ScheduleInterview(ctx context.Context, id uuid.UUID, in InterviewInput) (application.Application, error) {
	iv, err := parseInterview(in)
	if err != nil {
		return application.Application{}, err
	}
	app, err := s.Get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	if err := s.apps.SetInterview(ctx, id, iv); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		s.logf("[Career] schedule interview failed id=%s err=%v", id, err)
		return application.Application{}, ErrInternal
	}

	app.Interview = &iv
	return app, nil
}

// Delete removes the application and then releases its resume. A failed
// release leaves an orphan blob and is only logged.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	app, err := s.apps.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return ErrNotFound
		}
		s.logf("[Career] delete application failed id=%s err=%v", id, err)
		return ErrInternal
	}
	if app.Resume.Key != "" {
		if err := s.resumes.Delete(ctx, app.Resume.Key); err != nil {
			s.logf("[Career] release resume failed id=%s key=%s err=%v", id, app.Resume.Key, err)
		}
	}
	return nil
}

func parseInterview(in InterviewInput) (application.Interview, error) {
	mode := application.InterviewMode(strings.ToLower(strings.TrimSpace(in.Mode)))
	if !mode.Valid() {
		return application.Interview{}, ErrInvalidInterview
	}

	rawDate := strings.TrimSpace(in.Date)
	date, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		date, err = time.Parse(time.RFC3339, rawDate)
		if err != nil {
			return application.Interview{}, ErrInvalidInterview
		}
	}
	date = date.UTC()

	iv := application.Interview{
		Scheduled:   true,
		Date:        &date,
		Time:        strings.TrimSpace(in.Time),
		Location:    strings.TrimSpace(in.Location),
		Mode:        mode,
		MeetingLink: strings.TrimSpace(in.MeetingLink),
	}
	if iv.Time == "" {
		return application.Interview{}, ErrInvalidInterview
	}
	switch mode {
	case application.InterviewInPerson:
		if iv.Location == "" {
			return application.Interview{}, ErrInvalidInterview
		}
	case application.InterviewVirtual:
		if iv.MeetingLink == "" {
			return application.Interview{}, ErrInvalidInterview
		}
	}
	return iv, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
