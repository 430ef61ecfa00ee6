package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/bazar-backend/internal/gateway"
	"github.com/vasiliy-maslov/bazar-backend/internal/order"
	"github.com/vasiliy-maslov/bazar-backend/internal/product"
)

type mockRepository struct {
	createFunc       func(ctx context.Context, o *order.Order) error
	getByTranIDFunc  func(ctx context.Context, transactionID string) (*order.Order, error)
	markPaidFunc     func(ctx context.Context, transactionID string) error
	deleteUnpaidFunc func(ctx context.Context, transactionID string) error
}

func (m *mockRepository) Create(ctx context.Context, o *order.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockRepository) GetByTransactionID(ctx context.Context, transactionID string) (*order.Order, error) {
	return m.getByTranIDFunc(ctx, transactionID)
}

func (m *mockRepository) MarkPaid(ctx context.Context, transactionID string) error {
	return m.markPaidFunc(ctx, transactionID)
}

func (m *mockRepository) DeleteUnpaid(ctx context.Context, transactionID string) error {
	return m.deleteUnpaidFunc(ctx, transactionID)
}

type mockCatalog struct {
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

func (m *mockCatalog) GetProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return m.getByIDFunc(ctx, id)
}

type mockGateway struct {
	createSessionFunc func(ctx context.Context, s gateway.SessionRequest) (string, error)
}

func (m *mockGateway) CreateSession(ctx context.Context, s gateway.SessionRequest) (string, error) {
	return m.createSessionFunc(ctx, s)
}

var testProductID = uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440000"))

func validCheckoutRequest() order.CheckoutRequest {
	return order.CheckoutRequest{
		ProductID: testProductID,
		Count:     3,
		Title:     "Wireless Mouse",
		Category:  "electronics",
		UserName:  "Rahim",
		Email:     "rahim@example.com",
		Colors:    []string{"black"},
		City:      "Dhaka",
		Address:   "House 7, Road 12",
		ZipCode:   "1207",
	}
}

func TestService_Checkout(t *testing.T) {
	catalogOK := &mockCatalog{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id, Title: "Wireless Mouse", Category: "electronics", Price: 500}, nil
		},
	}

	t.Run("success_persists_pending_order_before_returning_url", func(t *testing.T) {
		var persisted *order.Order
		var sessionReq gateway.SessionRequest
		var calls []string

		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				calls = append(calls, "create")
				persisted = o
				return nil
			},
		}
		gw := &mockGateway{
			createSessionFunc: func(ctx context.Context, s gateway.SessionRequest) (string, error) {
				calls = append(calls, "gateway")
				sessionReq = s
				return "https://sandbox.sslcommerz.com/checkout/abc", nil
			},
		}

		svc := order.NewService(repo, catalogOK, gw, "BDT", "http://localhost:5000")

		result, err := svc.Checkout(context.Background(), validCheckoutRequest())
		require.NoError(t, err)

		assert.Equal(t, "https://sandbox.sslcommerz.com/checkout/abc", result.URL)
		// The pending order must be durable before the URL is handed back.
		assert.Equal(t, []string{"gateway", "create"}, calls)

		require.NotNil(t, persisted)
		assert.Equal(t, 1500.0, persisted.TotalPrice, "total price must be product.price * count")
		assert.False(t, persisted.PaidStatus)
		assert.Equal(t, testProductID, persisted.ProductID)
		assert.NotEmpty(t, persisted.TransactionID)

		assert.Equal(t, persisted.TransactionID, sessionReq.TransactionID)
		assert.Equal(t, 1500.0, sessionReq.TotalAmount)
		assert.Equal(t, "BDT", sessionReq.Currency)
		assert.Equal(t, "http://localhost:5000/payment/success/"+persisted.TransactionID, sessionReq.SuccessURL)
		assert.Equal(t, "http://localhost:5000/payment/fail/"+persisted.TransactionID, sessionReq.FailURL)
	})

	t.Run("transaction_ids_are_unique_per_checkout", func(t *testing.T) {
		seen := make(map[string]bool)
		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				assert.False(t, seen[o.TransactionID], "transaction id %s reused", o.TransactionID)
				seen[o.TransactionID] = true
				return nil
			},
		}
		gw := &mockGateway{
			createSessionFunc: func(ctx context.Context, s gateway.SessionRequest) (string, error) {
				return "https://example.com/pay", nil
			},
		}

		svc := order.NewService(repo, catalogOK, gw, "BDT", "http://localhost:5000")

		for i := 0; i < 20; i++ {
			_, err := svc.Checkout(context.Background(), validCheckoutRequest())
			require.NoError(t, err)
		}
		assert.Len(t, seen, 20)
	})

	t.Run("unknown_product", func(t *testing.T) {
		catalog := &mockCatalog{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
				return nil, product.ErrNotFound
			},
		}
		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				t.Fatal("no order may be persisted for an unknown product")
				return nil
			},
		}
		gw := &mockGateway{
			createSessionFunc: func(ctx context.Context, s gateway.SessionRequest) (string, error) {
				t.Fatal("no gateway session may be created for an unknown product")
				return "", nil
			},
		}

		svc := order.NewService(repo, catalog, gw, "BDT", "http://localhost:5000")

		_, err := svc.Checkout(context.Background(), validCheckoutRequest())
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("non_positive_count", func(t *testing.T) {
		svc := order.NewService(&mockRepository{}, catalogOK, &mockGateway{}, "BDT", "http://localhost:5000")

		for _, count := range []int{0, -1} {
			req := validCheckoutRequest()
			req.Count = count
			_, err := svc.Checkout(context.Background(), req)
			assert.ErrorIs(t, err, order.ErrInvalidCount)
		}
	})

	t.Run("gateway_failure_persists_nothing", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				t.Fatal("no order may be persisted when the gateway call fails")
				return nil
			},
		}
		gw := &mockGateway{
			createSessionFunc: func(ctx context.Context, s gateway.SessionRequest) (string, error) {
				return "", gateway.ErrSessionRejected
			},
		}

		svc := order.NewService(repo, catalogOK, gw, "BDT", "http://localhost:5000")

		_, err := svc.Checkout(context.Background(), validCheckoutRequest())
		assert.ErrorIs(t, err, order.ErrGatewayFailed)
	})

	t.Run("persist_failure_surfaces", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				return errors.New("connection reset")
			},
		}
		gw := &mockGateway{
			createSessionFunc: func(ctx context.Context, s gateway.SessionRequest) (string, error) {
				return "https://example.com/pay", nil
			},
		}

		svc := order.NewService(repo, catalogOK, gw, "BDT", "http://localhost:5000")

		_, err := svc.Checkout(context.Background(), validCheckoutRequest())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, order.ErrGatewayFailed)
	})
}

func TestService_ReconcileSuccess(t *testing.T) {
	t.Run("marks_paid", func(t *testing.T) {
		var gotTranID string
		repo := &mockRepository{
			markPaidFunc: func(ctx context.Context, transactionID string) error {
				gotTranID = transactionID
				return nil
			},
		}
		svc := order.NewService(repo, &mockCatalog{}, &mockGateway{}, "BDT", "")

		err := svc.ReconcileSuccess(context.Background(), "tran-1")
		assert.NoError(t, err)
		assert.Equal(t, "tran-1", gotTranID)
	})

	t.Run("unknown_transaction", func(t *testing.T) {
		repo := &mockRepository{
			markPaidFunc: func(ctx context.Context, transactionID string) error {
				return order.ErrNotFound
			},
		}
		svc := order.NewService(repo, &mockCatalog{}, &mockGateway{}, "BDT", "")

		err := svc.ReconcileSuccess(context.Background(), "forged")
		assert.ErrorIs(t, err, order.ErrNotFound)
	})
}

func TestService_ReconcileFailure(t *testing.T) {
	t.Run("deletes_pending_order", func(t *testing.T) {
		var gotTranID string
		repo := &mockRepository{
			deleteUnpaidFunc: func(ctx context.Context, transactionID string) error {
				gotTranID = transactionID
				return nil
			},
		}
		svc := order.NewService(repo, &mockCatalog{}, &mockGateway{}, "BDT", "")

		err := svc.ReconcileFailure(context.Background(), "tran-2")
		assert.NoError(t, err)
		assert.Equal(t, "tran-2", gotTranID)
	})

	t.Run("unknown_transaction_is_noop", func(t *testing.T) {
		repo := &mockRepository{
			deleteUnpaidFunc: func(ctx context.Context, transactionID string) error {
				return order.ErrNotFound
			},
		}
		svc := order.NewService(repo, &mockCatalog{}, &mockGateway{}, "BDT", "")

		err := svc.ReconcileFailure(context.Background(), "forged")
		assert.ErrorIs(t, err, order.ErrNotFound)
	})
}

func TestService_GetByTransactionID(t *testing.T) {
	repo := &mockRepository{
		getByTranIDFunc: func(ctx context.Context, transactionID string) (*order.Order, error) {
			if transactionID != "tran-3" {
				return nil, order.ErrNotFound
			}
			return &order.Order{TransactionID: transactionID, TotalPrice: 1500}, nil
		},
	}
	svc := order.NewService(repo, &mockCatalog{}, &mockGateway{}, "BDT", "")

	o, err := svc.GetByTransactionID(context.Background(), "tran-3")
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, o.TotalPrice)

	_, err = svc.GetByTransactionID(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

// memoryRepository mimics the single-row update/delete semantics of the
// Postgres repository so the full order lifecycle can be exercised.
type memoryRepository struct {
	orders map[string]*order.Order
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{orders: make(map[string]*order.Order)}
}

func (m *memoryRepository) Create(ctx context.Context, o *order.Order) error {
	if _, ok := m.orders[o.TransactionID]; ok {
		return order.ErrDuplicateTransaction
	}
	cp := *o
	m.orders[o.TransactionID] = &cp
	return nil
}

func (m *memoryRepository) GetByTransactionID(ctx context.Context, transactionID string) (*order.Order, error) {
	o, ok := m.orders[transactionID]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memoryRepository) MarkPaid(ctx context.Context, transactionID string) error {
	o, ok := m.orders[transactionID]
	if !ok {
		return order.ErrNotFound
	}
	o.PaidStatus = true
	return nil
}

func (m *memoryRepository) DeleteUnpaid(ctx context.Context, transactionID string) error {
	o, ok := m.orders[transactionID]
	if !ok || o.PaidStatus {
		return order.ErrNotFound
	}
	delete(m.orders, transactionID)
	return nil
}

func lifecycleService(repo order.Repository) order.Service {
	catalog := &mockCatalog{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id, Price: 500}, nil
		},
	}
	gw := &mockGateway{
		createSessionFunc: func(ctx context.Context, s gateway.SessionRequest) (string, error) {
			return "https://example.com/pay/" + s.TransactionID, nil
		},
	}
	return order.NewService(repo, catalog, gw, "BDT", "http://localhost:5000")
}

func TestOrderLifecycle_SuccessIsIdempotent(t *testing.T) {
	repo := newMemoryRepository()
	svc := lifecycleService(repo)

	result, err := svc.Checkout(context.Background(), validCheckoutRequest())
	require.NoError(t, err)
	tranID := result.Order.TransactionID

	require.NoError(t, svc.ReconcileSuccess(context.Background(), tranID))
	// A repeated success callback is a safe no-op update.
	require.NoError(t, svc.ReconcileSuccess(context.Background(), tranID))

	o, err := svc.GetByTransactionID(context.Background(), tranID)
	require.NoError(t, err)
	assert.True(t, o.PaidStatus)
}

func TestOrderLifecycle_FailureAfterSuccessIsRejected(t *testing.T) {
	repo := newMemoryRepository()
	svc := lifecycleService(repo)

	result, err := svc.Checkout(context.Background(), validCheckoutRequest())
	require.NoError(t, err)
	tranID := result.Order.TransactionID

	require.NoError(t, svc.ReconcileSuccess(context.Background(), tranID))

	// A contradictory failure callback must not destroy the paid order.
	err = svc.ReconcileFailure(context.Background(), tranID)
	assert.ErrorIs(t, err, order.ErrNotFound)

	o, err := svc.GetByTransactionID(context.Background(), tranID)
	require.NoError(t, err)
	assert.True(t, o.PaidStatus)
}

func TestOrderLifecycle_FailureRemovesPendingOrder(t *testing.T) {
	repo := newMemoryRepository()
	svc := lifecycleService(repo)

	result, err := svc.Checkout(context.Background(), validCheckoutRequest())
	require.NoError(t, err)
	tranID := result.Order.TransactionID

	require.NoError(t, svc.ReconcileFailure(context.Background(), tranID))

	_, err = svc.GetByTransactionID(context.Background(), tranID)
	assert.ErrorIs(t, err, order.ErrNotFound)

	// The second failure callback is a 404-style no-op.
	err = svc.ReconcileFailure(context.Background(), tranID)
	assert.ErrorIs(t, err, order.ErrNotFound)
}
