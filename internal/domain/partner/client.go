package partner

import (
	"github.com/shopfront/backend/internal/domain/shared"
)

// Client is a known buyer. Guest orders are matched to a client by exact name.
type Client struct {
	shared.BaseAggregateRoot
	Profile
}

// NewClient validates the profile and builds a client
func NewClient(profile Profile) (*Client, error) {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Profile:           profile,
	}, nil
}

// Update replaces the client's profile
func (c *Client) Update(profile Profile) error {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return err
	}
	c.Profile = profile
	c.IncrementVersion()
	return nil
}
