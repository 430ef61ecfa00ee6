package product_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/bazar-backend/internal/product"
)

type mockRepository struct {
	createFunc         func(ctx context.Context, p *product.Product) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*product.Product, error)
	listFunc           func(ctx context.Context) ([]product.Product, error)
	listByCategoryFunc func(ctx context.Context, category string) ([]product.Product, error)
	categoriesFunc     func(ctx context.Context) ([]string, error)
}

func (m *mockRepository) Create(ctx context.Context, p *product.Product) error {
	return m.createFunc(ctx, p)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) List(ctx context.Context) ([]product.Product, error) {
	return m.listFunc(ctx)
}

func (m *mockRepository) ListByCategory(ctx context.Context, category string) ([]product.Product, error) {
	return m.listByCategoryFunc(ctx, category)
}

func (m *mockRepository) Categories(ctx context.Context) ([]string, error) {
	return m.categoriesFunc(ctx)
}

func TestService_CreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		input   product.Product
		wantErr error
	}{
		{
			name:    "missing_title",
			input:   product.Product{Category: "electronics", Price: 500},
			wantErr: product.ErrTitleRequired,
		},
		{
			name:    "missing_category",
			input:   product.Product{Title: "Wireless Mouse", Price: 500},
			wantErr: product.ErrCategoryRequired,
		},
		{
			name:    "zero_price",
			input:   product.Product{Title: "Wireless Mouse", Category: "electronics"},
			wantErr: product.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := product.NewService(&mockRepository{})
			_, err := svc.CreateProduct(context.Background(), &tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("success", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, p *product.Product) error {
				return nil
			},
		}
		svc := product.NewService(repo)

		created, err := svc.CreateProduct(context.Background(), &product.Product{
			Title:    "Wireless Mouse",
			Category: "electronics",
			Brand:    "Logi",
			Price:    500,
		})
		require.NoError(t, err)
		assert.Equal(t, "Wireless Mouse", created.Title)
	})
}

func TestService_GetProductByID(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, got uuid.UUID) (*product.Product, error) {
			if got != id {
				return nil, product.ErrNotFound
			}
			return &product.Product{ID: got, Price: 500}, nil
		},
	}
	svc := product.NewService(repo)

	p, err := svc.GetProductByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 500.0, p.Price)

	_, err = svc.GetProductByID(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestService_ListCategories(t *testing.T) {
	repo := &mockRepository{
		categoriesFunc: func(ctx context.Context) ([]string, error) {
			// The repository returns them already sorted and deduplicated.
			return []string{"accessories", "electronics", "furniture"}, nil
		},
	}
	svc := product.NewService(repo)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"accessories", "electronics", "furniture"}, categories)
}
