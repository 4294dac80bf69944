package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/middleware"
	"helpdesk/internal/models"
	"helpdesk/internal/policy"
	"helpdesk/internal/repository"
	"helpdesk/internal/utils"
)

type TicketHTTP struct {
	tickets repository.TicketRepository
	log     zerolog.Logger
}

func NewTicketHTTP(tickets repository.TicketRepository, log zerolog.Logger) *TicketHTTP {
	return &TicketHTTP{tickets: tickets, log: log}
}

// POST /api/tickets
func (h *TicketHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		var in struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Category    string   `json:"category"`
			Priority    string   `json:"priority"`
			Attachments []string `json:"attachments"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Title = strings.TrimSpace(in.Title)
		in.Description = strings.TrimSpace(in.Description)
		in.Category = strings.TrimSpace(in.Category)
		if in.Title == "" || in.Description == "" || in.Category == "" {
			utils.Error(w, http.StatusBadRequest, "please add a title, description, and category")
			return
		}
		if !models.ValidPriority(in.Priority) {
			in.Priority = models.PriorityMedium
		}

		t := &models.Ticket{
			UserID:      u.ID,
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			Priority:    in.Priority,
			Status:      models.StatusOpen,
			Attachments: in.Attachments,
		}
		if err := h.tickets.Create(r.Context(), t); err != nil {
			h.log.Error().Err(err).Msg("ticket create failed")
			utils.Error(w, http.StatusInternalServerError, "unable to create ticket")
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// GET /api/tickets
func (h *TicketHTTP) ListMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		tickets, err := h.tickets.ListByOwner(r.Context(), u.ID)
		if err != nil {
			h.log.Error().Err(err).Msg("ticket list failed")
			utils.Error(w, http.StatusInternalServerError, "unable to fetch tickets")
			return
		}
		utils.JSON(w, http.StatusOK, tickets)
	}
}

// GET /api/tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusNotFound, "ticket not found")
			return
		}
		t, err := h.tickets.Get(r.Context(), id)
		if err != nil {
			h.log.Error().Err(err).Msg("ticket get failed")
			utils.Error(w, http.StatusInternalServerError, "unable to fetch ticket")
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "ticket not found")
			return
		}
		if !policy.CanAccessTicket(t, u.ID, u.Role) {
			utils.Error(w, http.StatusUnauthorized, "not authorized")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// GET /api/admin/tickets
func (h *TicketHTTP) ListAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tickets, err := h.tickets.ListAll(r.Context())
		if err != nil {
			h.log.Error().Err(err).Msg("admin ticket list failed")
			utils.Error(w, http.StatusInternalServerError, "unable to fetch all tickets")
			return
		}
		utils.JSON(w, http.StatusOK, tickets)
	}
}

// PATCH /api/admin/tickets/{id}/status
// Any value inside the status enum is accepted as-is; there is no
// transition table.
func (h *TicketHTTP) SetStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusNotFound, "ticket not found")
			return
		}
		var in struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := h.tickets.SetStatus(r.Context(), id, in.Status)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				utils.Error(w, http.StatusNotFound, "ticket not found")
			case errors.Is(err, repository.ErrInvalidStatus):
				utils.Error(w, http.StatusBadRequest, "invalid status")
			default:
				h.log.Error().Err(err).Msg("status update failed")
				utils.Error(w, http.StatusInternalServerError, "unable to update status")
			}
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}
