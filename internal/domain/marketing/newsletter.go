package marketing

import (
	"regexp"
	"strings"

	"github.com/shopfront/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Subscription is a newsletter signup. Email is unique.
type Subscription struct {
	shared.BaseEntity
	Email string
}

// NewSubscription validates and normalizes email
func NewSubscription(email string) (*Subscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	return &Subscription{BaseEntity: shared.NewBaseEntity(), Email: email}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

// ErrAlreadySubscribed is returned when the email is already on the list
var ErrAlreadySubscribed = shared.NewDomainError("ALREADY_SUBSCRIBED", "Email is already subscribed")
