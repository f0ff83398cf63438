package cli

import (
	"github.com/rvasek/mailbrief/internal/backend"
	"github.com/rvasek/mailbrief/internal/domain"
)

// ---------------------------------------------------------------------------
// Email JSON types (list)
// ---------------------------------------------------------------------------

type jsonEmail struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Sender   string `json:"sender"`
	Date     string `json:"date,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Priority int    `json:"priority"`
	Tier     string `json:"tier"`
}

func toJSONEmails(emails []domain.Email) []jsonEmail {
	out := make([]jsonEmail, 0, len(emails))
	for _, e := range emails {
		out = append(out, jsonEmail{
			ID:       e.ID,
			Subject:  e.Subject,
			Sender:   e.Sender,
			Date:     e.Date,
			Summary:  e.Summary,
			Reason:   e.Reason,
			Priority: e.Priority,
			Tier:     domain.TierFor(e.Priority).String(),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Answer JSON type (ask)
// ---------------------------------------------------------------------------

type jsonAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ---------------------------------------------------------------------------
// Action JSON type (mark-read, auth)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK      bool   `json:"ok"`
	Action  string `json:"action"`
	EmailID string `json:"email_id,omitempty"`
}

// ---------------------------------------------------------------------------
// Health JSON type (health)
// ---------------------------------------------------------------------------

type jsonHealth struct {
	Status           string `json:"status"`
	AIProvider       string `json:"ai_provider"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

func toJSONHealth(info *backend.HealthInfo) jsonHealth {
	return jsonHealth{
		Status:           info.Status,
		AIProvider:       info.AIProvider,
		APIKeyConfigured: info.APIKeyConfigured,
	}
}
