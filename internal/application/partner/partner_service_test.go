package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByExactName(ctx context.Context, name string) (*partner.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and saves", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo, zap.NewNop())

		repo.On("ExistsByEmail", mock.Anything, "jane@example.com", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Client")).Return(nil)

		resp, err := svc.Create(ctx, PartnerRequest{Name: " Jane Doe ", Email: "Jane@Example.com", Phone: "+216 55 000 000"})
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", resp.Name)
		assert.Equal(t, "jane@example.com", resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("email already used", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo, zap.NewNop())

		repo.On("ExistsByEmail", mock.Anything, "jane@example.com", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, PartnerRequest{Name: "Jane", Email: "jane@example.com"})
		assert.ErrorIs(t, err, partner.ErrEmailTaken)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid phone", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo, zap.NewNop())

		_, err := svc.Create(ctx, PartnerRequest{Name: "Jane", Email: "jane@example.com", Phone: "call me"})
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_PHONE", de.Code)
	})
}

func TestClientService_UpdateExcludesItself(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewClientService(repo, zap.NewNop())

	client, err := partner.NewClient(partner.Profile{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	repo.On("ExistsByEmail", mock.Anything, "jane@example.com", &client.ID).Return(false, nil)
	repo.On("Save", mock.Anything, client).Return(nil)

	resp, err := svc.Update(context.Background(), client.ID, PartnerRequest{Name: "Jane Smith", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", resp.Name)
	assert.Equal(t, 2, client.Version)
}

func TestClientService_DeleteNotFound(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewClientService(repo, zap.NewNop())
	id := uuid.New()

	repo.On("Delete", mock.Anything, id).Return(shared.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), shared.ErrNotFound)
}

func TestSupplierService(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		repo.On("ExistsByEmail", mock.Anything, "sales@acme.tn", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := svc.Create(ctx, PartnerRequest{Name: "Acme", Email: "sales@acme.tn"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.Name)
	})

	t.Run("update with a taken email", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		supplier, err := partner.NewSupplier(partner.Profile{Name: "Acme", Email: "sales@acme.tn"})
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		repo.On("ExistsByEmail", mock.Anything, "other@acme.tn", &supplier.ID).Return(true, nil)

		_, err = svc.Update(ctx, supplier.ID, PartnerRequest{Name: "Acme", Email: "other@acme.tn"})
		assert.ErrorIs(t, err, partner.ErrEmailTaken)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("list sorts by name", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		byName := mock.MatchedBy(func(f shared.Filter) bool { return f.OrderBy == "name" && f.Search == "ac" })
		repo.On("FindAll", mock.Anything, byName).Return([]partner.Supplier{{}}, nil)
		repo.On("Count", mock.Anything, byName).Return(int64(1), nil)

		items, total, err := svc.List(ctx, PartnerListFilter{Search: "ac"})
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, int64(1), total)
	})
}
