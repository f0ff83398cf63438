package domain

// Email is one analyzed unread message as returned by the backend.
// All text fields come from untrusted mail content and must be escaped
// before rendering.
type Email struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Sender   string `json:"sender"`
	Date     string `json:"date,omitempty"`
	Summary  string `json:"summary"`
	Reason   string `json:"reason"`
	Priority int    `json:"priority"`
}

// Tier classifies an email's numeric priority score.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// TierFor maps a priority score in [0,10] to its tier.
// Scores outside the range clamp into the nearest tier.
func TierFor(priority int) Tier {
	switch {
	case priority >= 7:
		return TierHigh
	case priority >= 4:
		return TierMedium
	default:
		return TierLow
	}
}

// Label returns the display label for a tier.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "Urgent"
	case TierMedium:
		return "Important"
	default:
		return "Normal"
	}
}

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// minTokenLength guards against empty or obviously broken tokens before
// any network call. It is a sanity check, not a security measure.
const minTokenLength = 10

// ValidToken reports whether tok passes the basic length sanity check.
func ValidToken(tok string) bool {
	return len(tok) >= minTokenLength
}
