package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riya-portal/internal/domain/contact"
	uccontact "riya-portal/internal/usecase/contact"
)

type stubContacts struct {
	created uccontact.CreateInput
	err     error
}

func (s *stubContacts) Create(_ context.Context, in uccontact.CreateInput) (contact.Message, error) {
	s.created = in
	return contact.Message{ID: uuid.New(), Name: in.Name}, s.err
}

func (s *stubContacts) List(context.Context) ([]contact.Message, error) { return nil, s.err }

func (s *stubContacts) Delete(context.Context, uuid.UUID) error { return s.err }

func TestContactHandler_Create(t *testing.T) {
	uc := &stubContacts{}
	app := newTestApp()
	app.Post("/contact", NewContactHandler(uc).Create)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/contact",
		`{"name":"Meera","email":"meera@example.com","phone":"9000000000","subject":"Quote","message":"Need scaffolding"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Message sent successfully", decodeEnvelope(t, resp.Body).Message)
	assert.Equal(t, "Quote", uc.created.Subject)
}

func TestContactHandler_Errors(t *testing.T) {
	app := newTestApp()
	app.Post("/contact", NewContactHandler(&stubContacts{err: uccontact.ErrInvalidInput}).Create)
	app.Delete("/contact/:id", NewContactHandler(&stubContacts{err: uccontact.ErrNotFound}).Delete)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/contact", `{"name":"Meera"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All fields are mandatory", decodeEnvelope(t, resp.Body).Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/contact/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Contact not found", decodeEnvelope(t, resp.Body).Message)
}
