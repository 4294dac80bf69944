package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/middleware"
	"helpdesk/internal/models"
	"helpdesk/internal/repository"
)

type fakeTicketRepo struct {
	tickets map[bson.ObjectID]*models.Ticket
	err     error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[bson.ObjectID]*models.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, t *models.Ticket) error {
	if r.err != nil {
		return r.err
	}
	t.ID = bson.NewObjectID()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	if t.AISuggestions == nil {
		t.AISuggestions = []string{}
	}
	r.tickets[t.ID] = t
	return nil
}

func (r *fakeTicketRepo) Get(_ context.Context, id bson.ObjectID) (*models.Ticket, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.tickets[id], nil
}

func (r *fakeTicketRepo) ListByOwner(_ context.Context, ownerID bson.ObjectID) ([]models.Ticket, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Ticket{}
	for _, t := range r.tickets {
		if t.UserID == ownerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context) ([]models.Ticket, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Ticket{}
	for _, t := range r.tickets {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTicketRepo) SetStatus(_ context.Context, id bson.ObjectID, status string) (*models.Ticket, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !models.ValidStatus(status) {
		return nil, repository.ErrInvalidStatus
	}
	t, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

type fakeMessageRepo struct {
	messages []models.Message
	err      error
}

func (r *fakeMessageRepo) Create(_ context.Context, m *models.Message) error {
	if r.err != nil {
		return r.err
	}
	m.ID = bson.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	if m.Attachments == nil {
		m.Attachments = []string{}
	}
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeMessageRepo) ListByTicket(_ context.Context, ticketID bson.ObjectID) ([]models.Message, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Message{}
	for _, m := range r.messages {
		if m.TicketID == ticketID {
			out = append(out, m)
		}
	}
	return out, nil
}

func asUser(req *http.Request, u *models.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), u))
}
