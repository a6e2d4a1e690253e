package intake

import (
	"context"
	"errors"
	"log"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"riya-portal/internal/domain/application"
	"riya-portal/internal/infrastructure/mailer"
	"riya-portal/internal/ws"
)

var (
	ErrIncomplete     = errors.New("all fields are compulsory")
	ErrResumeRequired = errors.New("resume is required")
	ErrResumeTooLarge = errors.New("resume exceeds size limit")
	ErrResumeType     = errors.New("resume content type not allowed")
	ErrInvalidJobID   = errors.New("invalid job id")
	ErrAlreadyApplied = errors.New("already applied for this job")
	ErrInternal       = errors.New("internal error")
)

const (
	DefaultMaxResumeBytes = 2 * 1024 * 1024
	defaultMailTimeout    = 10 * time.Second

	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	resumeKeyPrefix = "resumes/"
)

var allowedResumeTypes = []string{mimePDF, mimeDOC, mimeDOCX}

type Resume struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Submission struct {
	Name     string
	Email    string
	Phone    string
	JobID    string
	JobTitle string
	Resume   *Resume
}

type Receipt struct {
	ApplicationID uuid.UUID
}

// EventPublisher receives admin feed events. Publishing must not block.
type EventPublisher interface {
	Publish(evt ws.Event)
}

type Options struct {
	MaxResumeBytes int64
	MailTimeout    time.Duration
}

type Service struct {
	apps    application.Repository
	resumes application.ResumeStore
	mail    mailer.Sender
	events  EventPublisher
	logger  *log.Logger
	opts    Options

	now func() time.Time
	wg  sync.WaitGroup
}

func NewService(apps application.Repository, resumes application.ResumeStore, mail mailer.Sender, events EventPublisher, logger *log.Logger, opts Options) *Service {
	if opts.MaxResumeBytes <= 0 {
		opts.MaxResumeBytes = DefaultMaxResumeBytes
	}
	if opts.MailTimeout <= 0 {
		opts.MailTimeout = defaultMailTimeout
	}
	return &Service{
		apps:    apps,
		resumes: resumes,
		mail:    mail,
		events:  events,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// Submit validates and stores a job application. Checks run in a fixed
// order and the first failure is returned. The confirmation email is sent
// in the background after the record is stored and never affects the
// result.
func (s *Service) Submit(ctx context.Context, in Submission) (Receipt, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	phone := NormalizePhone(in.Phone)
	rawJobID := strings.TrimSpace(in.JobID)
	jobTitle := strings.TrimSpace(in.JobTitle)

	if name == "" || email == "" || phone == "" || rawJobID == "" || jobTitle == "" {
		return Receipt{}, ErrIncomplete
	}
	if in.Resume == nil || len(in.Resume.Data) == 0 {
		return Receipt{}, ErrResumeRequired
	}
	if int64(len(in.Resume.Data)) > s.opts.MaxResumeBytes {
		return Receipt{}, ErrResumeTooLarge
	}
	contentType, ok := ResumeContentType(in.Resume.ContentType, in.Resume.Data)
	if !ok {
		return Receipt{}, ErrResumeType
	}
	jobID, err := uuid.Parse(rawJobID)
	if err != nil {
		return Receipt{}, ErrInvalidJobID
	}

	exists, err := s.apps.ExistsForIdentity(ctx, jobID, email, phone)
	if err != nil {
		s.logf("[Intake] duplicate check failed job_id=%s err=%v", jobID, err)
		return Receipt{}, ErrInternal
	}
	if exists {
		return Receipt{}, ErrAlreadyApplied
	}

	key := resumeKeyPrefix + uuid.NewString()
	if err := s.resumes.Put(ctx, key, in.Resume.Data); err != nil {
		s.logf("[Intake] store resume failed job_id=%s err=%v", jobID, err)
		return Receipt{}, ErrInternal
	}

	app := application.Application{
		JobID:          jobID,
		JobTitle:       jobTitle,
		ApplicantName:  name,
		ApplicantEmail: email,
		ApplicantPhone: phone,
		Resume: application.ResumeMeta{
			Key:         key,
			Filename:    strings.TrimSpace(in.Resume.Filename),
			Size:        int64(len(in.Resume.Data)),
			ContentType: contentType,
		},
		Status:    application.StatusPending,
		AppliedAt: s.now().UTC(),
	}

	id, err := s.apps.Create(ctx, app)
	if err != nil {
		if delErr := s.resumes.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logf("[Intake] release orphan resume failed key=%s err=%v", key, delErr)
		}
		if errors.Is(err, application.ErrDuplicate) {
			return Receipt{}, ErrAlreadyApplied
		}
		s.logf("[Intake] create application failed job_id=%s err=%v", jobID, err)
		return Receipt{}, ErrInternal
	}

	s.logf("[Intake] application stored id=%s job_id=%s", id, jobID)
	s.notify(email, name, id, jobTitle)
	if s.events != nil {
		s.events.Publish(ws.NewEvent(ws.EventApplicationReceived, id.String(), jobTitle, app.AppliedAt))
	}

	return Receipt{ApplicationID: id}, nil
}

func (s *Service) notify(to, name string, id uuid.UUID, jobTitle string) {
	if s.mail == nil {
		return
	}
	msg := mailer.ApplicationReceived(to, name, id.String(), jobTitle)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.MailTimeout)
		defer cancel()
		if err := s.mail.Send(ctx, msg); err != nil {
			s.logf("[Intake] confirmation email failed application_id=%s err=%v", id, err)
		}
	}()
}

// Wait blocks until in-flight confirmation emails have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps digits and a single leading '+', so "+91 98765-43210"
// and "+919876543210" compare equal.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "+" {
		return ""
	}
	return out
}

// ResumeContentType resolves the type of an uploaded resume. A declared
// type is trusted unless it is missing or generic, in which case the bytes
// are sniffed.
func ResumeContentType(declared string, data []byte) (string, bool) {
	mt := strings.ToLower(strings.TrimSpace(declared))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}

	if mt == "" || mt == "application/octet-stream" {
		detected := mimetype.Detect(data)
		for _, allowed := range allowedResumeTypes {
			if detected.Is(allowed) {
				return allowed, true
			}
		}
		return detected.String(), false
	}

	for _, allowed := range allowedResumeTypes {
		if mt == allowed {
			return allowed, true
		}
	}
	return mt, false
}
