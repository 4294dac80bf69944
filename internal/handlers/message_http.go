package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/middleware"
	"helpdesk/internal/models"
	"helpdesk/internal/policy"
	"helpdesk/internal/repository"
	"helpdesk/internal/utils"
)

type MessageHTTP struct {
	messages repository.MessageRepository
	tickets  repository.TicketRepository
	log      zerolog.Logger
}

func NewMessageHTTP(messages repository.MessageRepository, tickets repository.TicketRepository, log zerolog.Logger) *MessageHTTP {
	return &MessageHTTP{messages: messages, tickets: tickets, log: log}
}

// GET /api/messages/{ticketId}
func (h *MessageHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := bson.ObjectIDFromHex(chi.URLParam(r, "ticketId"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to fetch messages")
			return
		}
		msgs, err := h.messages.ListByTicket(r.Context(), ticketID)
		if err != nil {
			h.log.Error().Err(err).Msg("message list failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch messages")
			return
		}
		utils.JSON(w, http.StatusOK, msgs)
	}
}

// POST /api/messages/{ticketId}
// The ticket-existence check and the insert are two separate steps; a
// ticket deleted in between is not handled.
func (h *MessageHTTP) Add() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromContext(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		ticketID, err := bson.ObjectIDFromHex(chi.URLParam(r, "ticketId"))
		if err != nil {
			utils.Error(w, http.StatusNotFound, "ticket not found")
			return
		}
		var in struct {
			MessageText string   `json:"messageText"`
			Attachments []string `json:"attachments"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := h.tickets.Get(r.Context(), ticketID)
		if err != nil {
			h.log.Error().Err(err).Msg("ticket lookup failed")
			utils.Error(w, http.StatusInternalServerError, "failed to send message")
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "ticket not found")
			return
		}
		if !policy.CanAccessTicket(t, u.ID, u.Role) {
			utils.Error(w, http.StatusForbidden, "not authorized to reply to this ticket")
			return
		}

		m := &models.Message{
			TicketID:    ticketID,
			SenderID:    u.ID,
			MessageText: in.MessageText,
			Attachments: in.Attachments,
		}
		if err := h.messages.Create(r.Context(), m); err != nil {
			h.log.Error().Err(err).Msg("message create failed")
			utils.Error(w, http.StatusInternalServerError, "failed to send message")
			return
		}
		utils.JSON(w, http.StatusCreated, m)
	}
}
