package marketing

import (
	"strings"
	"testing"

	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	return de.Code
}

func TestNewSubscription(t *testing.T) {
	sub, err := NewSubscription("  News@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "news@example.com", sub.Email)

	for _, bad := range []string{"", "nope", "Jane <jane@example.com>"} {
		_, err := NewSubscription(bad)
		assert.Equal(t, "INVALID_EMAIL", codeOf(t, err), bad)
	}
}

func TestContactMessage(t *testing.T) {
	msg, err := NewContactMessage("Jane", "jane@example.com", "Where is my order?")
	require.NoError(t, err)
	assert.Equal(t, ContactOpen, msg.State)

	require.NoError(t, msg.SetState(ContactClosed))
	assert.Equal(t, ContactClosed, msg.State)

	assert.Equal(t, "INVALID_STATE", codeOf(t, msg.SetState("archived")))

	_, err = NewContactMessage("Jane", "jane@example.com", "   ")
	assert.Equal(t, "INVALID_MESSAGE", codeOf(t, err))
}

func TestBanner(t *testing.T) {
	b, err := NewBanner("Soldes d'été", "https://cdn.example.com/b.jpg", "banners/b.jpg", true)
	require.NoError(t, err)
	assert.Equal(t, "Soldes d'été", b.Title)

	_, err = NewBanner(strings.Repeat("x", 26), "https://cdn.example.com/b.jpg", "k", true)
	assert.Equal(t, "INVALID_TITLE", codeOf(t, err))

	_, err = NewBanner("ok", "", "", true)
	assert.Equal(t, "INVALID_FILE", codeOf(t, err))

	b.SetVisible(false)
	assert.False(t, b.Show)
}
