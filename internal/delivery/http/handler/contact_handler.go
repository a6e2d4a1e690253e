package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"riya-portal/internal/delivery/http/middleware"
	"riya-portal/internal/domain/contact"
	"riya-portal/internal/pkg/response"
	uccontact "riya-portal/internal/usecase/contact"
)

type ContactUsecase interface {
	Create(ctx context.Context, in uccontact.CreateInput) (contact.Message, error)
	List(ctx context.Context) ([]contact.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactHandler struct {
	uc ContactUsecase
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func NewContactHandler(uc ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) Create(c fiber.Ctx) error {
	var req contactRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	if _, err := h.uc.Create(c.Context(), uccontact.CreateInput(req)); err != nil {
		return mapContactError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Message sent successfully", nil)
}

func (h *ContactHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapContactError(err)
	}
	return response.Success(c, fiber.StatusOK, "Contacts fetched successfully", items)
}

func (h *ContactHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "contact")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapContactError(err)
	}
	return response.Success(c, fiber.StatusOK, "Contact deleted successfully", nil)
}

func mapContactError(err error) error {
	switch {
	case errors.Is(err, uccontact.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "All fields are mandatory", nil, err)
	case errors.Is(err, uccontact.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Contact not found", nil, err)
	default:
		return internalError(err)
	}
}
