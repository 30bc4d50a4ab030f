package partner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopfront/backend/internal/domain/shared"
	"golang.org/x/text/unicode/norm"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

// Profile holds the contact details shared by clients and suppliers
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Normalize trims every field, lowercases the email and puts the name in
// NFC form so composed and decomposed accents compare equal.
func (p Profile) Normalize() Profile {
	return Profile{
		Name:    norm.NFC.String(strings.TrimSpace(p.Name)),
		Email:   strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:   strings.TrimSpace(p.Phone),
		Address: strings.TrimSpace(p.Address),
	}
}

// Validate checks a normalized profile
func (p Profile) Validate() error {
	if p.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if utf8.RuneCountInString(p.Name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if p.Email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(p.Email) > 254 || !emailRegex.MatchString(p.Email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if p.Phone != "" {
		if len(p.Phone) > 15 {
			return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 15 characters")
		}
		if !phoneRegex.MatchString(p.Phone) {
			return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
		}
	}
	return nil
}

// ErrEmailTaken is returned when another partner of the same kind uses the email
var ErrEmailTaken = shared.NewDomainError("EMAIL_EXISTS", "Email is already registered")
