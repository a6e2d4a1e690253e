package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"riya-portal/internal/delivery/http/middleware"
	"riya-portal/internal/domain/posting"
	"riya-portal/internal/pkg/response"
	ucposting "riya-portal/internal/usecase/posting"
)

type PostingUsecase interface {
	Create(ctx context.Context, in ucposting.CreateInput) (posting.Posting, error)
	ListOpen(ctx context.Context) ([]posting.Posting, error)
	ListAll(ctx context.Context) ([]posting.Posting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostingHandler struct {
	uc PostingUsecase
}

type createPostingRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	RequiredSkills  string `json:"requiredSkills"`
	Location        string `json:"location"`
	JobType         string `json:"jobType"`
	Experience      string `json:"experience"`
	CTC             string `json:"ctc"`
	ShowCTC         bool   `json:"showCtc"`
	LastDateToApply string `json:"lastDateToApply"`
}

func NewPostingHandler(uc PostingUsecase) *PostingHandler {
	return &PostingHandler{uc: uc}
}

func (h *PostingHandler) Create(c fiber.Ctx) error {
	var req createPostingRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.Create(c.Context(), ucposting.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		Location:        req.Location,
		JobType:         req.JobType,
		Experience:      req.Experience,
		CTC:             req.CTC,
		ShowCTC:         req.ShowCTC,
		LastDateToApply: req.LastDateToApply,
	})
	if err != nil {
		return mapPostingError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job posted successfully", p)
}

func (h *PostingHandler) ListOpen(c fiber.Ctx) error {
	items, err := h.uc.ListOpen(c.Context())
	if err != nil {
		return mapPostingError(err)
	}
	return response.Success(c, fiber.StatusOK, listMessage(len(items)), items)
}

func (h *PostingHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context())
	if err != nil {
		return mapPostingError(err)
	}
	return response.Success(c, fiber.StatusOK, listMessage(len(items)), items)
}

func (h *PostingHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "job")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapPostingError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

func listMessage(n int) string {
	if n == 0 {
		return "No jobs found"
	}
	return "Jobs fetched successfully"
}

func mapPostingError(err error) error {
	switch {
	case errors.Is(err, ucposting.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "All required fields are mandatory", nil, err)
	case errors.Is(err, ucposting.ErrInvalidType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job type must be Full Time, Part Time or Internship", nil, err)
	case errors.Is(err, ucposting.ErrInvalidDate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Last date to apply must be a date (YYYY-MM-DD)", nil, err)
	case errors.Is(err, ucposting.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return internalError(err)
	}
}
