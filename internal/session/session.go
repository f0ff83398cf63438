package session

import "github.com/rvasek/mailbrief/internal/domain"

// Phase is the UI phase of the current popup activation.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseShowingEmails
	PhaseEmpty
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseShowingEmails:
		return "showing-emails"
	case PhaseEmpty:
		return "empty"
	default:
		return "error"
	}
}

// State holds the mutable state of one popup activation: the current
// digest, the UI phase, and the chat transcript. It is owned by the
// orchestrator and passed to the operations that need it; the
// single-threaded bubbletea update loop means no locking is required.
type State struct {
	emails     []domain.Email
	phase      Phase
	err        error
	canRetry   bool
	transcript []domain.ChatMessage
}

// New returns a fresh session in the Loading phase. Creating a new State
// is the only thing that clears the chat transcript.
func New() *State {
	return &State{phase: PhaseLoading}
}

// Phase returns the current UI phase.
func (s *State) Phase() Phase { return s.phase }

// Emails returns the current digest in server order.
func (s *State) Emails() []domain.Email { return s.emails }

// Len returns the number of emails currently in the session.
func (s *State) Len() int { return len(s.emails) }

// Replace installs a freshly fetched digest, entering ShowingEmails or
// Empty depending on whether the fetch returned anything.
func (s *State) Replace(emails []domain.Email) {
	s.emails = emails
	s.err = nil
	if len(emails) == 0 {
		s.phase = PhaseEmpty
	} else {
		s.phase = PhaseShowingEmails
	}
}

// Remove deletes the email with the given id from the digest. Removing
// an absent id is a no-op, so racing optimistic removals stay safe. The
// phase is left untouched even when the last email goes: emptying via
// mark-read must trigger a full reload, never a direct Empty state.
func (s *State) Remove(id string) bool {
	for i, e := range s.emails {
		if e.ID == id {
			s.emails = append(s.emails[:i], s.emails[i+1:]...)
			return true
		}
	}
	return false
}

// Fail records an error for rendering. retryable controls whether the
// refresh affordance stays available; auth failures are not retryable
// since the same credential misconfiguration would recur.
func (s *State) Fail(err error, retryable bool) {
	s.phase = PhaseError
	s.err = err
	s.canRetry = retryable
}

// Err returns the pending error, if any, and whether refresh is allowed.
func (s *State) Err() (error, bool) {
	return s.err, s.canRetry
}

// Reset returns the session to Loading for a full re-run of the load
// path. The digest and any pending error are dropped; the transcript
// survives until a new State replaces this one.
func (s *State) Reset() {
	s.phase = PhaseLoading
	s.emails = nil
	s.err = nil
	s.canRetry = false
}

// Append adds a message to the chat transcript. The transcript is
// append-only and never mutated in place.
func (s *State) Append(msg domain.ChatMessage) {
	s.transcript = append(s.transcript, msg)
}

// Transcript returns the chat transcript in append order.
func (s *State) Transcript() []domain.ChatMessage { return s.transcript }
