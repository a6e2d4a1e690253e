package intake

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"riya-portal/internal/domain/application"
	"riya-portal/internal/infrastructure/mailer"
	"riya-portal/internal/ws"
)

// memApps enforces the same (job, email) and (job, phone) uniqueness as the
// database indexes.
type memApps struct {
	mu    sync.Mutex
	items []application.Application

	staleExists bool
	createErr   error
}

func (m *memApps) Create(_ context.Context, a application.Application) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return uuid.Nil, m.createErr
	}
	for _, x := range m.items {
		if x.JobID == a.JobID && (x.ApplicantEmail == a.ApplicantEmail || x.ApplicantPhone == a.ApplicantPhone) {
			return uuid.Nil, application.ErrDuplicate
		}
	}
	a.ID = uuid.New()
	m.items = append(m.items, a)
	return a.ID, nil
}

func (m *memApps) ExistsForIdentity(_ context.Context, jobID uuid.UUID, email, phone string) (bool, error) {
	if m.staleExists {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if x.JobID == jobID && (x.ApplicantEmail == email || x.ApplicantPhone == phone) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApps) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if x.ID == id {
			return x, nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

func (m *memApps) List(context.Context) ([]application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]application.Application(nil), m.items...), nil
}

func (m *memApps) UpdateStatus(context.Context, uuid.UUID, application.Status, application.Status) error {
	return nil
}

func (m *memApps) SetInterview(context.Context, uuid.UUID, application.Interview) error { return nil }

func (m *memApps) Delete(context.Context, uuid.UUID) (application.Application, error) {
	return application.Application{}, nil
}

func (m *memApps) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type memBlobs struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemBlobs() *memBlobs { return &memBlobs{data: map[string][]byte{}} }

func (m *memBlobs) Put(_ context.Context, key string, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), b...)
	return nil
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, application.ErrResumeNotFound
	}
	return b, nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memBlobs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

type memMail struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *memMail) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type memEvents struct {
	mu     sync.Mutex
	events []ws.Event
}

func (m *memEvents) Publish(evt ws.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

type fixture struct {
	svc    *Service
	apps   *memApps
	blobs  *memBlobs
	mail   *memMail
	events *memEvents
	logs   *bytes.Buffer
}

func newFixture() *fixture {
	f := &fixture{
		apps:   &memApps{},
		blobs:  newMemBlobs(),
		mail:   &memMail{},
		events: &memEvents{},
		logs:   &bytes.Buffer{},
	}
	f.svc = NewService(f.apps, f.blobs, f.mail, f.events, log.New(f.logs, "", 0), Options{})
	return f
}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func validSubmission(jobID uuid.UUID) Submission {
	return Submission{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "+91 98765 43210",
		JobID:    jobID.String(),
		JobTitle: "Site Welder",
		Resume: &Resume{
			Filename:    "asha.pdf",
			ContentType: "application/pdf",
			Data:        pdfBytes,
		},
	}
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture()
	jobID := uuid.New()

	rec, err := f.svc.Submit(context.Background(), validSubmission(jobID))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.svc.Wait()

	stored, err := f.apps.GetByID(context.Background(), rec.ApplicationID)
	if err != nil {
		t.Fatalf("stored record: %v", err)
	}
	if stored.Status != application.StatusPending {
		t.Fatalf("status = %s, want pending", stored.Status)
	}
	if stored.ApplicantPhone != "+919876543210" {
		t.Fatalf("phone not normalized: %q", stored.ApplicantPhone)
	}
	if stored.Resume.Size != int64(len(pdfBytes)) || stored.Resume.ContentType != mimePDF {
		t.Fatalf("unexpected resume meta %+v", stored.Resume)
	}

	blob, err := f.blobs.Get(context.Background(), stored.Resume.Key)
	if err != nil || !bytes.Equal(blob, pdfBytes) {
		t.Fatalf("resume bytes not stored intact err=%v", err)
	}

	if len(f.mail.sent) != 1 {
		t.Fatalf("expected 1 confirmation mail, got %d", len(f.mail.sent))
	}
	if msg := f.mail.sent[0]; msg.To != "asha@example.com" || !strings.Contains(msg.Body, rec.ApplicationID.String()) {
		t.Fatalf("unexpected confirmation mail %+v", msg)
	}
	if len(f.events.events) != 1 || f.events.events[0].Type != ws.EventApplicationReceived {
		t.Fatalf("expected application event, got %+v", f.events.events)
	}
}

func TestSubmit_ValidationOrder(t *testing.T) {
	jobID := uuid.New()
	big := append([]byte(nil), pdfBytes...)
	big = append(big, make([]byte, DefaultMaxResumeBytes)...)

	tests := []struct {
		name   string
		mutate func(s *Submission)
		want   error
	}{
		{
			name: "missing field wins over missing resume",
			mutate: func(s *Submission) {
				s.Name = "  "
				s.Resume = nil
			},
			want: ErrIncomplete,
		},
		{
			name:   "phone with no digits",
			mutate: func(s *Submission) { s.Phone = "--" },
			want:   ErrIncomplete,
		},
		{
			name:   "no resume",
			mutate: func(s *Submission) { s.Resume = nil },
			want:   ErrResumeRequired,
		},
		{
			name:   "empty resume",
			mutate: func(s *Submission) { s.Resume.Data = nil },
			want:   ErrResumeRequired,
		},
		{
			name: "oversize wins over wrong type",
			mutate: func(s *Submission) {
				s.Resume.Data = big
				s.Resume.ContentType = "image/png"
			},
			want: ErrResumeTooLarge,
		},
		{
			name:   "wrong type",
			mutate: func(s *Submission) { s.Resume.ContentType = "image/png" },
			want:   ErrResumeType,
		},
		{
			name: "unrecognized bytes without declared type",
			mutate: func(s *Submission) {
				s.Resume.ContentType = ""
				s.Resume.Data = []byte("just some plain text")
			},
			want: ErrResumeType,
		},
		{
			name:   "malformed job id",
			mutate: func(s *Submission) { s.JobID = "not-a-uuid" },
			want:   ErrInvalidJobID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			in := validSubmission(jobID)
			r := *in.Resume
			in.Resume = &r
			tt.mutate(&in)

			_, err := f.svc.Submit(context.Background(), in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			f.svc.Wait()
			if f.apps.count() != 0 || f.blobs.count() != 0 {
				t.Fatalf("rejected submission left state behind")
			}
			if len(f.mail.sent) != 0 || len(f.events.events) != 0 {
				t.Fatalf("rejected submission triggered side effects")
			}
		})
	}
}

func TestSubmit_SizeLimitIsInclusive(t *testing.T) {
	f := newFixture()
	in := validSubmission(uuid.New())
	data := make([]byte, DefaultMaxResumeBytes)
	copy(data, pdfBytes)
	in.Resume.Data = data

	if _, err := f.svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("resume at exactly the limit rejected: %v", err)
	}
}

func TestSubmit_SniffsGenericContentType(t *testing.T) {
	f := newFixture()
	in := validSubmission(uuid.New())
	in.Resume.ContentType = "application/octet-stream"

	rec, err := f.svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	stored, _ := f.apps.GetByID(context.Background(), rec.ApplicationID)
	if stored.Resume.ContentType != mimePDF {
		t.Fatalf("content type = %q, want %q", stored.Resume.ContentType, mimePDF)
	}
}

func TestSubmit_DuplicateMatchesEmailOrPhone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	jobID := uuid.New()

	if _, err := f.svc.Submit(ctx, validSubmission(jobID)); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	sameEmail := validSubmission(jobID)
	sameEmail.Email = "  ASHA@example.com "
	sameEmail.Phone = "+1 555 0100"
	if _, err := f.svc.Submit(ctx, sameEmail); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("same email err = %v, want ErrAlreadyApplied", err)
	}

	samePhone := validSubmission(jobID)
	samePhone.Email = "someone.else@example.com"
	samePhone.Phone = "+919876543210"
	if _, err := f.svc.Submit(ctx, samePhone); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("same phone err = %v, want ErrAlreadyApplied", err)
	}

	otherJob := validSubmission(uuid.New())
	if _, err := f.svc.Submit(ctx, otherJob); err != nil {
		t.Fatalf("same applicant on another job rejected: %v", err)
	}

	fresh := validSubmission(jobID)
	fresh.Email = "ravi@example.com"
	fresh.Phone = "+1 555 0199"
	if _, err := f.svc.Submit(ctx, fresh); err != nil {
		t.Fatalf("distinct applicant rejected: %v", err)
	}

	if got := f.apps.count(); got != 3 {
		t.Fatalf("stored %d applications, want 3", got)
	}
	f.svc.Wait()
}

func TestSubmit_ConcurrentDuplicatesStoreOnce(t *testing.T) {
	f := newFixture()
	f.apps.staleExists = true
	jobID := uuid.New()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(context.Background(), validSubmission(jobID))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	f.svc.Wait()

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyApplied):
			dup++
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Fatalf("ok=%d dup=%d, want 1 and %d", ok, dup, n-1)
	}
	if f.blobs.count() != 1 {
		t.Fatalf("losing submissions left %d blobs, want 1", f.blobs.count())
	}
}

func TestSubmit_CreateFailureReleasesBlob(t *testing.T) {
	f := newFixture()
	f.apps.createErr = errors.New("connection reset")

	if _, err := f.svc.Submit(context.Background(), validSubmission(uuid.New())); !errors.Is(err, ErrInternal) {
		t.Fatalf("err = %v, want ErrInternal", err)
	}
	if f.blobs.count() != 0 {
		t.Fatalf("blob not released after failed create")
	}
}

func TestSubmit_MailFailureDoesNotFailSubmission(t *testing.T) {
	f := newFixture()
	f.mail.err = errors.New("smtp unavailable")

	rec, err := f.svc.Submit(context.Background(), validSubmission(uuid.New()))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.svc.Wait()

	if _, err := f.apps.GetByID(context.Background(), rec.ApplicationID); err != nil {
		t.Fatalf("record missing after mail failure: %v", err)
	}
	if !strings.Contains(f.logs.String(), "[Intake] confirmation email failed application_id="+rec.ApplicationID.String()) {
		t.Fatalf("mail failure not logged: %q", f.logs.String())
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+91 98765-43210": "+919876543210",
		"(555) 010 0199":  "5550100199",
		" 12+34 ":         "1234",
		"+":               "",
		"":                "",
	}
	for in, want := range tests {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResumeContentType(t *testing.T) {
	tests := []struct {
		declared string
		data     []byte
		want     string
		ok       bool
	}{
		{"application/pdf", pdfBytes, mimePDF, true},
		{"Application/PDF; name=cv.pdf", pdfBytes, mimePDF, true},
		{mimeDOC, []byte("x"), mimeDOC, true},
		{mimeDOCX, []byte("x"), mimeDOCX, true},
		{"", pdfBytes, mimePDF, true},
		{"text/plain", pdfBytes, "text/plain", false},
	}
	for _, tt := range tests {
		got, ok := ResumeContentType(tt.declared, tt.data)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ResumeContentType(%q) = %q,%v want %q,%v", tt.declared, got, ok, tt.want, tt.ok)
		}
	}
}
