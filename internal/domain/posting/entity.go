package posting

import (
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeFullTime   JobType = "Full Time"
	JobTypePartTime   JobType = "Part Time"
	JobTypeInternship JobType = "Internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship:
		return true
	default:
		return false
	}
}

const CTCNotDisclosed = "Not disclosed"

// Posting is an open position advertised on the career page. Postings are
// created and deleted by administrators and never edited in place.
type Posting struct {
	ID              uuid.UUID `json:"_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RequiredSkills  string    `json:"requiredSkills"`
	Location        string    `json:"location"`
	JobType         JobType   `json:"jobType"`
	Experience      string    `json:"experience"`
	CTC             string    `json:"ctc"`
	ShowCTC         bool      `json:"showCtc"`
	LastDateToApply time.Time `json:"lastDateToApply"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Open reports whether applications are still accepted at now. The deadline
// is a calendar date, so the whole deadline day counts as open.
func (p Posting) Open(now time.Time) bool {
	d := p.LastDateToApply.UTC()
	end := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return now.UTC().Before(end)
}

// Public returns the posting as shown to visitors: compensation is replaced
// unless the administrator chose to show it.
func (p Posting) Public() Posting {
	if !p.ShowCTC {
		p.CTC = CTCNotDisclosed
	}
	return p
}
