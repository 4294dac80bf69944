// Package ai wraps the Gemini generateContent REST endpoint. The
// wrapping is best-effort glue: responses are coerced into the shapes
// the handlers need, and every failure path has a canned fallback so a
// provider outage never blocks the ticket flow.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"helpdesk/internal/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type Suggestion struct {
	Suggestion string `json:"suggestion"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
}

type HistoryEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// FallbackSuggestion is returned to the caller when the provider is
// unreachable or erroring.
var FallbackSuggestion = Suggestion{
	Suggestion: "AI service is currently unavailable. Please try again later.",
	Category:   "General",
	Priority:   "medium",
}

// FallbackReply is the degraded draft-reply body.
const FallbackReply = "I'm having trouble drafting a reply right now."

type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func New(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// SuggestSolution asks for strict-JSON triage advice. A response that
// fails to parse as JSON is folded into the default shape with the raw
// text as the suggestion; only a provider failure returns an error.
func (c *Client) SuggestSolution(ctx context.Context, description string) (Suggestion, error) {
	prompt := fmt.Sprintf(`Act as an IT Support AI. User issue: %q.
Respond with a STRICT JSON object, no markdown formatting:
{"suggestion": "a short, friendly 3-step solution (max 50 words)", "category": "one of [General, Technical, Billing, Feature Request]", "priority": "low, medium or high based on urgency"}`, description)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return Suggestion{}, err
	}
	text = stripFences(text)

	var s Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		c.log.Warn().Msg("ai response was not json, folding raw text")
		return Suggestion{Suggestion: text, Category: "General", Priority: "medium"}, nil
	}
	return s, nil
}

// DraftReply asks for a support-agent draft, with up to the last three
// thread messages folded into the prompt as context.
func (c *Client) DraftReply(ctx context.Context, ticketContent string, history []HistoryEntry) (string, error) {
	var ctxLines strings.Builder
	if len(history) > 0 {
		if len(history) > 3 {
			history = history[len(history)-3:]
		}
		ctxLines.WriteString("Previous messages:\n")
		for _, h := range history {
			fmt.Fprintf(&ctxLines, "- %s: %s\n", h.Role, h.Text)
		}
	}

	prompt := fmt.Sprintf(`Act as a professional IT Support Agent.
User's Issue: %q
%s
Write a draft response to the user.
- Be helpful and concise.
- Ask for details if needed.
- No subject lines or placeholders.`, ticketContent, ctxLines.String())

	return c.generate(ctx, prompt)
}

type genPart struct {
	Text string `json:"text"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type generateRequest struct {
	Contents []genContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []genContent{{Parts: []genPart{{Text: prompt}}}},
	}
	buf, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai provider returned %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("ai provider returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes the ```json fences models wrap strict-JSON
// answers in despite instructions.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
