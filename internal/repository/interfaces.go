package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidStatus = errors.New("invalid status")
)

type UserRepository interface {
	// Create persists the user; returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *models.User) error
	// GetByEmail returns (nil, nil) when no user matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns (nil, nil) when no user matches.
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *models.Ticket) error
	// Get returns (nil, nil) when no ticket matches.
	Get(ctx context.Context, id bson.ObjectID) (*models.Ticket, error)
	// ListByOwner returns the owner's tickets, newest first.
	ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]models.Ticket, error)
	// ListAll returns every ticket, newest first, with the owner summary populated.
	ListAll(ctx context.Context) ([]models.Ticket, error)
	// SetStatus overwrites the status unconditionally (no transition
	// checks) and returns the updated ticket. ErrInvalidStatus for a
	// value outside the enum, ErrNotFound when the ticket is missing.
	SetStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Ticket, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	// ListByTicket returns the thread in chronological order with the
	// sender summary populated.
	ListByTicket(ctx context.Context, ticketID bson.ObjectID) ([]models.Message, error)
}
