package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error) {
	args := m.Called(ctx, id, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, opts ListOptions) ([]Product, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) SetStock(ctx context.Context, id uint, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockRepository) LowStock(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Name:             "Ceramic Mug",
		Price:            100,
		WholesalePrice:   85,
		MinOrderQuantity: 12,
		StockQuantity:    200,
		IsActive:         true,
		BulkPricing: []BulkPriceTier{
			{ThresholdQuantity: 10, UnitPrice: 90},
			{ThresholdQuantity: 50, UnitPrice: 80},
		},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*product.Product")).Return(nil)

		p, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "ceramic-mug", p.Slug)
		assert.Len(t, p.BulkPricing, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		input := validInput()
		input.Price = 0
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("InvalidMOQ", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		input := validInput()
		input.MinOrderQuantity = 0
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidMOQ)
	})

	t.Run("NegativeStock", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		input := validInput()
		input.StockQuantity = -1
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidStock)
	})

	t.Run("NonIncreasingTiers", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		input := validInput()
		input.BulkPricing = []BulkPriceTier{
			{ThresholdQuantity: 50, UnitPrice: 80},
			{ThresholdQuantity: 10, UnitPrice: 90},
		}
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidBulkPricing)
	})

	t.Run("DuplicateTierThreshold", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		input := validInput()
		input.BulkPricing = []BulkPriceTier{
			{ThresholdQuantity: 10, UnitPrice: 90},
			{ThresholdQuantity: 10, UnitPrice: 85},
		}
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidBulkPricing)
	})

	t.Run("TierWithZeroPrice", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		input := validInput()
		input.BulkPricing = []BulkPriceTier{{ThresholdQuantity: 10, UnitPrice: 0}}
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *Product {
		return &Product{
			ID:               1,
			Name:             "Ceramic Mug",
			Slug:             "ceramic-mug",
			Price:            100,
			WholesalePrice:   85,
			MinOrderQuantity: 12,
			IsActive:         true,
		}
	}

	t.Run("PartialUpdate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(1), false).Return(existing(), nil)
		mockRepo.On("Update", ctx, mock.AnythingOfType("*product.Product")).Return(nil)

		newPrice := 120.0
		p, err := svc.Update(ctx, 1, UpdateProductInput{Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, 120.0, p.Price)
		assert.Equal(t, "Ceramic Mug", p.Name)
	})

	t.Run("RenameRefreshesSlug", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(1), false).Return(existing(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(nil)

		name := "Stoneware Mug"
		p, err := svc.Update(ctx, 1, UpdateProductInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "stoneware-mug", p.Slug)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(2), false).Return(nil, ErrProductNotFound)

		_, err := svc.Update(ctx, 2, UpdateProductInput{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("RejectsInvalidResultingState", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(1), false).Return(existing(), nil)

		bad := -5.0
		_, err := svc.Update(ctx, 1, UpdateProductInput{Price: &bad})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestService_SetStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("SetStock", ctx, uint(1), 40).Return(nil)

		assert.NoError(t, svc.SetStock(ctx, 1, 40))
		mockRepo.AssertExpectations(t)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		err := svc.SetStock(ctx, 1, -1)
		assert.ErrorIs(t, err, ErrInvalidStock)
		mockRepo.AssertNotCalled(t, "SetStock")
	})
}

func TestService_GetList(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsApplied", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("List", ctx, ListOptions{Page: 1, Limit: 20}).Return([]Product{}, int64(0), nil)

		_, _, err := svc.GetList(ctx, ListOptions{})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("LimitCapped", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("List", ctx, ListOptions{Page: 1, Limit: 100}).Return([]Product{}, int64(0), nil)

		_, _, err := svc.GetList(ctx, ListOptions{Page: 1, Limit: 500})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
