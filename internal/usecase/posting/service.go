package posting

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"riya-portal/internal/domain/posting"
)

var (
	ErrInvalidInput = errors.New("all required fields are mandatory")
	ErrInvalidType  = errors.New("invalid job type")
	ErrInvalidDate  = errors.New("invalid last date to apply")
	ErrNotFound     = errors.New("job posting not found")
	ErrInternal     = errors.New("internal error")
)

// OpenListingKey caches the public career page listing.
const OpenListingKey = "postings:open"

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type CreateInput struct {
	Title           string
	Description     string
	RequiredSkills  string
	Location        string
	JobType         string
	Experience      string
	CTC             string
	ShowCTC         bool
	LastDateToApply string
}

type Service struct {
	postings posting.Repository
	cache    Cache
	logger   *log.Logger

	now func() time.Time
}

func NewService(postings posting.Repository, cache Cache, logger *log.Logger) *Service {
	return &Service{postings: postings, cache: cache, logger: logger, now: time.Now}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (posting.Posting, error) {
	p := posting.Posting{
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		RequiredSkills: strings.TrimSpace(in.RequiredSkills),
		Location:       strings.TrimSpace(in.Location),
		JobType:        posting.JobType(strings.TrimSpace(in.JobType)),
		Experience:     strings.TrimSpace(in.Experience),
		CTC:            strings.TrimSpace(in.CTC),
		ShowCTC:        in.ShowCTC,
	}
	rawDate := strings.TrimSpace(in.LastDateToApply)
	if p.Title == "" || p.Description == "" || p.RequiredSkills == "" || p.Location == "" ||
		p.JobType == "" || p.Experience == "" || rawDate == "" {
		return posting.Posting{}, ErrInvalidInput
	}
	if !p.JobType.Valid() {
		return posting.Posting{}, ErrInvalidType
	}
	deadline, err := parseDate(rawDate)
	if err != nil {
		return posting.Posting{}, ErrInvalidDate
	}
	p.LastDateToApply = deadline
	if p.CTC == "" {
		p.CTC = posting.CTCNotDisclosed
	}
	p.CreatedAt = s.now().UTC()

	id, err := s.postings.Create(ctx, p)
	if err != nil {
		s.logf("[Posting] create failed title=%q err=%v", p.Title, err)
		return posting.Posting{}, ErrInternal
	}
	p.ID = id

	s.invalidate(ctx)
	s.logf("[Posting] created id=%s title=%q", id, p.Title)
	return p, nil
}

// ListOpen returns what visitors see: postings still accepting
// applications, newest first, with hidden compensation masked. The result
// is cached; a cache outage falls through to the database.
func (s *Service) ListOpen(ctx context.Context) ([]posting.Posting, error) {
	now := s.now()

	var cached []posting.Posting
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, OpenListingKey, &cached)
		if err != nil {
			s.logf("[Posting] cache read failed key=%s err=%v", OpenListingKey, err)
		}
		if hit {
			return filterOpen(cached, now), nil
		}
	}

	items, err := s.postings.ListOpen(ctx, now)
	if err != nil {
		s.logf("[Posting] list open failed err=%v", err)
		return nil, ErrInternal
	}
	out := make([]posting.Posting, 0, len(items))
	for _, p := range items {
		out = append(out, p.Public())
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, OpenListingKey, out, 0); err != nil {
			s.logf("[Posting] cache write failed key=%s err=%v", OpenListingKey, err)
		}
	}
	return out, nil
}

func (s *Service) ListAll(ctx context.Context) ([]posting.Posting, error) {
	items, err := s.postings.List(ctx)
	if err != nil {
		s.logf("[Posting] list failed err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.postings.Delete(ctx, id); err != nil {
		if errors.Is(err, posting.ErrNotFound) {
			return ErrNotFound
		}
		s.logf("[Posting] delete failed id=%s err=%v", id, err)
		return ErrInternal
	}
	s.invalidate(ctx)
	s.logf("[Posting] deleted id=%s", id)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, OpenListingKey); err != nil {
		s.logf("[Posting] cache invalidate failed key=%s err=%v", OpenListingKey, err)
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// A cached listing can outlive a deadline, so it is filtered again on read.
func filterOpen(items []posting.Posting, now time.Time) []posting.Posting {
	out := items[:0]
	for _, p := range items {
		if p.Open(now) {
			out = append(out, p)
		}
	}
	return out
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
