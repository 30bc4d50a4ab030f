package partner

import (
	"testing"

	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("normalizes the profile", func(t *testing.T) {
		c, err := NewClient(Profile{Name: " Jane Doe ", Email: "Jane@Example.COM", Phone: "+213 555"})
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", c.Name)
		assert.Equal(t, "jane@example.com", c.Email)
	})

	tests := []struct {
		name    string
		profile Profile
		code    string
	}{
		{"missing name", Profile{Email: "a@b.co"}, "INVALID_NAME"},
		{"missing email", Profile{Name: "A"}, "INVALID_EMAIL"},
		{"bad email", Profile{Name: "A", Email: "nope"}, "INVALID_EMAIL"},
		{"bad phone", Profile{Name: "A", Email: "a@b.co", Phone: "call me"}, "INVALID_PHONE"},
		{"long phone", Profile{Name: "A", Email: "a@b.co", Phone: "1234567890123456"}, "INVALID_PHONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.profile)
			require.Error(t, err)
			de, ok := shared.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestSupplier_Update(t *testing.T) {
	s, err := NewSupplier(Profile{Name: "Acme", Email: "sales@acme.io"})
	require.NoError(t, err)

	require.NoError(t, s.Update(Profile{Name: "Acme Ltd", Email: "sales@acme.io", Address: "1 Road"}))
	assert.Equal(t, "Acme Ltd", s.Name)
	assert.Equal(t, 2, s.Version)

	require.Error(t, s.Update(Profile{Name: "", Email: "sales@acme.io"}))
	assert.Equal(t, "Acme Ltd", s.Name)
}

func TestProfileNormalize_ComposesAccents(t *testing.T) {
	decomposed := Profile{Name: "Rene\u0301 Dupont"}.Normalize()
	composed := Profile{Name: "Ren\u00e9 Dupont"}.Normalize()
	assert.Equal(t, composed.Name, decomposed.Name)
}
