package view

import (
	"fmt"
	"html"

	"github.com/rvasek/mailbrief/internal/domain"
)

// Card is the renderable form of one email: tier classification plus
// escaped text fields. It carries no behavior and touches no state, so
// any rendering surface can consume it directly.
type Card struct {
	ID      string
	Tier    domain.Tier
	Label   string
	Badge   string
	Subject string
	Sender  string
	Date    string
	Summary string
	Reason  string
}

// EscapeText neutralizes the HTML-special characters & < > " ' in
// untrusted text. Backend and mail content must never reach a rendering
// surface unescaped.
func EscapeText(s string) string {
	return html.EscapeString(s)
}

// ToCard builds the view model for a single email. Pure and
// deterministic; all untrusted fields are escaped here, once.
func ToCard(e domain.Email) Card {
	tier := domain.TierFor(e.Priority)
	return Card{
		ID:      e.ID,
		Tier:    tier,
		Label:   tier.Label(),
		Badge:   fmt.Sprintf("%s (%d/10)", tier.Label(), e.Priority),
		Subject: EscapeText(e.Subject),
		Sender:  EscapeText(e.Sender),
		Date:    EscapeText(e.Date),
		Summary: EscapeText(e.Summary),
		Reason:  EscapeText(e.Reason),
	}
}

// ToCards maps a digest to cards, preserving order.
func ToCards(emails []domain.Email) []Card {
	cards := make([]Card, 0, len(emails))
	for _, e := range emails {
		cards = append(cards, ToCard(e))
	}
	return cards
}
