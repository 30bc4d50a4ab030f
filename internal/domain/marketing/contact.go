package marketing

import (
	"strings"

	"github.com/shopfront/backend/internal/domain/shared"
)

// ContactState tracks whether a message still needs an answer
type ContactState string

const (
	ContactOpen   ContactState = "ouvert"
	ContactClosed ContactState = "ferme"
)

// IsValid checks if the state is known
func (s ContactState) IsValid() bool {
	return s == ContactOpen || s == ContactClosed
}

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	shared.BaseEntity
	Name    string
	Email   string
	Message string
	State   ContactState
}

// NewContactMessage creates an open message
func NewContactMessage(name, email, message string) (*ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)

	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required and cannot exceed 100 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	return &ContactMessage{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Message:    message,
		State:      ContactOpen,
	}, nil
}

// SetState closes or reopens the message
func (m *ContactMessage) SetState(state ContactState) error {
	if !state.IsValid() {
		return shared.NewDomainError("INVALID_STATE", "State must be ouvert or ferme")
	}
	m.State = state
	m.Touch()
	return nil
}
