package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riya-portal/internal/domain/posting"
	ucposting "riya-portal/internal/usecase/posting"
)

type stubPostings struct {
	created ucposting.CreateInput
	items   []posting.Posting
	err     error
}

func (s *stubPostings) Create(_ context.Context, in ucposting.CreateInput) (posting.Posting, error) {
	s.created = in
	return posting.Posting{ID: uuid.New(), Title: in.Title}, s.err
}

func (s *stubPostings) ListOpen(context.Context) ([]posting.Posting, error) { return s.items, s.err }

func (s *stubPostings) ListAll(context.Context) ([]posting.Posting, error) { return s.items, s.err }

func (s *stubPostings) Delete(context.Context, uuid.UUID) error { return s.err }

func TestPostingHandler_Create(t *testing.T) {
	uc := &stubPostings{}
	app := newTestApp()
	app.Post("/job-posting", NewPostingHandler(uc).Create)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/job-posting",
		`{"title":"Welder","jobType":"Full Time","showCtc":true,"lastDateToApply":"2030-01-01"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Welder", uc.created.Title)
	assert.True(t, uc.created.ShowCTC)
	assert.Equal(t, "2030-01-01", uc.created.LastDateToApply)
}

func TestPostingHandler_Errors(t *testing.T) {
	app := newTestApp()
	h := NewPostingHandler(&stubPostings{err: ucposting.ErrNotFound})
	app.Delete("/job-posting/:id", h.Delete)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/job-posting/123", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid job ID", decodeEnvelope(t, resp.Body).Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/job-posting/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Job not found", decodeEnvelope(t, resp.Body).Message)
}

func TestPostingHandler_ListOpenEmpty(t *testing.T) {
	app := newTestApp()
	app.Get("/job-posting", NewPostingHandler(&stubPostings{}).ListOpen)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/job-posting", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "No jobs found", decodeEnvelope(t, resp.Body).Message)
}
