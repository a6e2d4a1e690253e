package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

var transitions = map[Status][]Status{
	StatusPending:     {StatusReviewing},
	StatusReviewing:   {StatusShortlisted, StatusRejected},
	StatusShortlisted: {StatusHired},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusRejected, StatusHired:
		return true
	default:
		return false
	}
}

// CanTransition reports whether an administrator may move an application
// from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type InterviewMode string

const (
	InterviewInPerson InterviewMode = "in-person"
	InterviewVirtual  InterviewMode = "virtual"
	InterviewPhone    InterviewMode = "phone"
)

func (m InterviewMode) Valid() bool {
	switch m {
	case InterviewInPerson, InterviewVirtual, InterviewPhone:
		return true
	default:
		return false
	}
}

type Interview struct {
	Scheduled   bool          `json:"scheduled"`
	Date        *time.Time    `json:"date,omitempty"`
	Time        string        `json:"time,omitempty"`
	Location    string        `json:"location,omitempty"`
	Mode        InterviewMode `json:"mode,omitempty"`
	MeetingLink string        `json:"meetingLink,omitempty"`
}

// ResumeMeta describes a stored resume. The bytes live in a ResumeStore
// under Key; the record only carries the reference.
type ResumeMeta struct {
	Key         string `json:"-"`
	Filename    string `json:"filename"`
	Size        int64  `json:"fileSize"`
	ContentType string `json:"contentType"`
}

type Application struct {
	ID             uuid.UUID  `json:"_id"`
	JobID          uuid.UUID  `json:"jobId"`
	JobTitle       string     `json:"jobTitle"`
	ApplicantName  string     `json:"applicantName"`
	ApplicantEmail string     `json:"applicantEmail"`
	ApplicantPhone string     `json:"applicantPhone"`
	Resume         ResumeMeta `json:"resume"`
	Status         Status     `json:"status"`
	AppliedAt      time.Time  `json:"appliedAt"`
	Interview      *Interview `json:"interview,omitempty"`
}
