package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("contact message not found")

// Message is a general inquiry left through the contact page.
type Message struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, m Message) (uuid.UUID, error)
	List(ctx context.Context) ([]Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
