package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"helpdesk/internal/ai"
	"helpdesk/internal/utils"
)

// Assistant is what the AI handlers need from the Gemini client.
type Assistant interface {
	SuggestSolution(ctx context.Context, description string) (ai.Suggestion, error)
	DraftReply(ctx context.Context, ticketContent string, history []ai.HistoryEntry) (string, error)
}

type AIHTTP struct {
	assistant Assistant
	log       zerolog.Logger
}

func NewAIHTTP(assistant Assistant, log zerolog.Logger) *AIHTTP {
	return &AIHTTP{assistant: assistant, log: log}
}

// POST /api/ai/suggest-solution
// Provider failure degrades to the canned payload rather than an
// opaque error, so ticket creation is never blocked on the AI.
func (h *AIHTTP) SuggestSolution() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Description) == "" {
			utils.Error(w, http.StatusBadRequest, "description required")
			return
		}

		s, err := h.assistant.SuggestSolution(r.Context(), in.Description)
		if err != nil {
			h.log.Error().Err(err).Msg("ai suggestion failed")
			utils.JSON(w, http.StatusInternalServerError, ai.FallbackSuggestion)
			return
		}
		utils.JSON(w, http.StatusOK, s)
	}
}

// POST /api/ai/draft-reply
func (h *AIHTTP) DraftReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			TicketContent string            `json:"ticketContent"`
			History       []ai.HistoryEntry `json:"history"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.TicketContent) == "" {
			utils.Error(w, http.StatusBadRequest, "ticket content required")
			return
		}

		reply, err := h.assistant.DraftReply(r.Context(), in.TicketContent, in.History)
		if err != nil {
			h.log.Error().Err(err).Msg("ai draft failed")
			utils.JSON(w, http.StatusInternalServerError, map[string]string{"reply": ai.FallbackReply})
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"reply": reply})
	}
}
