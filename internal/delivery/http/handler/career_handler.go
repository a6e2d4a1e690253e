package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"riya-portal/internal/delivery/http/middleware"
	"riya-portal/internal/domain/application"
	"riya-portal/internal/pkg/response"
	"riya-portal/internal/usecase/career"
	"riya-portal/internal/usecase/intake"
)

type IntakeUsecase interface {
	Submit(ctx context.Context, in intake.Submission) (intake.Receipt, error)
}

type CareerUsecase interface {
	List(ctx context.Context) ([]application.Application, error)
	Resume(ctx context.Context, id uuid.UUID) (application.Application, []byte, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to application.Status) (application.Application, error)
	ScheduleInterview(ctx context.Context, id uuid.UUID, in career.InterviewInput) (application.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CareerHandler struct {
	intake         IntakeUsecase
	admin          CareerUsecase
	maxResumeBytes int64
}

type statusRequest struct {
	Status string `json:"status"`
}

type interviewRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Mode        string `json:"mode"`
	MeetingLink string `json:"meetingLink"`
}

// applicationDetail carries the resume bytes; encoding/json renders []byte
// as base64.
type applicationDetail struct {
	application.Application
	ResumeData []byte `json:"resumeData"`
}

func NewCareerHandler(in IntakeUsecase, admin CareerUsecase, maxResumeBytes int64) *CareerHandler {
	if maxResumeBytes <= 0 {
		maxResumeBytes = intake.DefaultMaxResumeBytes
	}
	return &CareerHandler{intake: in, admin: admin, maxResumeBytes: maxResumeBytes}
}

// Apply accepts the public multipart application form.
func (h *CareerHandler) Apply(c fiber.Ctx) error {
	sub := intake.Submission{
		Name:     c.FormValue("applicantName"),
		Email:    c.FormValue("applicantEmail"),
		Phone:    c.FormValue("applicantPhone"),
		JobID:    c.FormValue("jobId"),
		JobTitle: c.FormValue("jobTitle"),
	}

	fh, err := c.FormFile("resume")
	if err == nil && fh != nil {
		r, err := h.readResume(fh)
		if err != nil {
			return badRequest(err)
		}
		sub.Resume = r
	}

	rec, err := h.intake.Submit(c.Context(), sub)
	if err != nil {
		return mapIntakeError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted successfully", fiber.Map{
		"applicationId": rec.ApplicationID,
	})
}

// readResume reads at most one byte past the limit, enough for the pipeline
// to see an oversize file without buffering all of it.
func (h *CareerHandler) readResume(fh *multipart.FileHeader) (*intake.Resume, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxResumeBytes+1))
	if err != nil {
		return nil, err
	}
	return &intake.Resume{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

func (h *CareerHandler) List(c fiber.Ctx) error {
	items, err := h.admin.List(c.Context())
	if err != nil {
		return mapCareerError(err)
	}
	msg := "Applications fetched successfully"
	if len(items) == 0 {
		msg = "No applications found"
	}
	return response.Success(c, fiber.StatusOK, msg, items)
}

func (h *CareerHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "applicant")
	if err != nil {
		return err
	}
	app, data, err := h.admin.Resume(c.Context(), id)
	if err != nil {
		return mapCareerError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application fetched successfully", applicationDetail{Application: app, ResumeData: data})
}

func (h *CareerHandler) DownloadResume(c fiber.Ctx) error {
	id, err := pathID(c, "applicant")
	if err != nil {
		return err
	}
	app, data, err := h.admin.Resume(c.Context(), id)
	if err != nil {
		return mapCareerError(err)
	}

	filename := app.Resume.Filename
	if filename == "" {
		filename = "resume"
	}
	c.Set(fiber.HeaderContentType, app.Resume.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(filename))
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *CareerHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := pathID(c, "applicant")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	app, err := h.admin.UpdateStatus(c.Context(), id, application.Status(req.Status))
	if err != nil {
		return mapCareerError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", app)
}

func (h *CareerHandler) ScheduleInterview(c fiber.Ctx) error {
	id, err := pathID(c, "applicant")
	if err != nil {
		return err
	}
	var req interviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	app, err := h.admin.ScheduleInterview(c.Context(), id, career.InterviewInput{
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Mode:        req.Mode,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		return mapCareerError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interview scheduled", app)
}

func (h *CareerHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "applicant")
	if err != nil {
		return err
	}
	if err := h.admin.Delete(c.Context(), id); err != nil {
		return mapCareerError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job application deleted successfully", nil)
}

func mapIntakeError(err error) error {
	switch {
	case errors.Is(err, intake.ErrIncomplete):
		return middleware.NewAppError(fiber.StatusBadRequest, "All fields are compulsory", nil, err)
	case errors.Is(err, intake.ErrResumeRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume is required", nil, err)
	case errors.Is(err, intake.ErrResumeTooLarge):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file size must be 2MB or less.", nil, err)
	case errors.Is(err, intake.ErrResumeType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume must be a PDF or Word document (.pdf, .doc, .docx).", nil, err)
	case errors.Is(err, intake.ErrInvalidJobID):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job ID", nil, err)
	case errors.Is(err, intake.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied for this job with this email or phone number.", nil, err)
	default:
		return internalError(err)
	}
}

func mapCareerError(err error) error {
	switch {
	case errors.Is(err, career.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, career.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application status", nil, err)
	case errors.Is(err, career.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Status change not allowed", nil, err)
	case errors.Is(err, career.ErrInvalidInterview):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid interview details", nil, err)
	default:
		return internalError(err)
	}
}
