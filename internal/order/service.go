package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/bazar-backend/internal/gateway"
	"github.com/vasiliy-maslov/bazar-backend/internal/product"
)

var (
	ErrInvalidCount = errors.New("count must be a positive integer")
	// ErrGatewayFailed wraps any error from the payment gateway session call.
	ErrGatewayFailed = errors.New("payment gateway failure")
)

// Catalog is the price-lookup dependency on the product service.
type Catalog interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// PaymentGateway creates hosted-checkout sessions.
type PaymentGateway interface {
	CreateSession(ctx context.Context, s gateway.SessionRequest) (string, error)
}

type CheckoutRequest struct {
	ProductID uuid.UUID
	Count     int
	Title     string
	Category  string
	UserName  string
	Email     string
	Colors    []string
	City      string
	Address   string
	ZipCode   string
}

type CheckoutResult struct {
	URL   string
	Order *Order
}

// Service is the order/payment orchestrator: it turns a checkout request into
// a gateway session plus a durable pending order, and reconciles the gateway's
// asynchronous verdict against that order.
type Service interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	ReconcileSuccess(ctx context.Context, transactionID string) error
	ReconcileFailure(ctx context.Context, transactionID string) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Order, error)
}

type service struct {
	repo          Repository
	catalog       Catalog
	gateway       PaymentGateway
	currency      string
	publicBaseURL string
}

func NewService(repo Repository, catalog Catalog, gw PaymentGateway, currency, publicBaseURL string) Service {
	return &service{
		repo:          repo,
		catalog:       catalog,
		gateway:       gw,
		currency:      currency,
		publicBaseURL: publicBaseURL,
	}
}

// Checkout looks up the product, opens a gateway session and persists the
// pending order. The order is written before the checkout URL is handed back,
// so a reconciliation callback can never race against a nonexistent order.
func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if req.Count <= 0 {
		return nil, ErrInvalidCount
	}

	p, err := s.catalog.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, product.ErrNotFound
		}
		log.Error().Err(err).Stringer("product_id", req.ProductID).Msg("service: failed to look up product for checkout")
		return nil, fmt.Errorf("service: failed to look up product: %w", err)
	}

	totalPrice := p.Price * float64(req.Count)

	// The transaction id is the sole correlation key with the gateway. It is
	// generated fresh per checkout, never shared process-wide.
	tranUUID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate transaction id: %w", err)
	}
	transactionID := tranUUID.String()

	url, err := s.gateway.CreateSession(ctx, gateway.SessionRequest{
		TransactionID:   transactionID,
		TotalAmount:     totalPrice,
		Currency:        s.currency,
		ProductName:     req.Title,
		ProductCategory: req.Category,
		ProductCount:    req.Count,
		CustomerName:    req.UserName,
		CustomerEmail:   req.Email,
		CustomerCity:    req.City,
		CustomerAddress: req.Address,
		CustomerZipCode: req.ZipCode,
		SuccessURL:      fmt.Sprintf("%s/payment/success/%s", s.publicBaseURL, transactionID),
		FailURL:         fmt.Sprintf("%s/payment/fail/%s", s.publicBaseURL, transactionID),
		CancelURL:       fmt.Sprintf("%s/payment/fail/%s", s.publicBaseURL, transactionID),
	})
	if err != nil {
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("service: gateway session creation failed")
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailed, err)
	}

	o := &Order{
		ProductID:     req.ProductID,
		TotalPrice:    totalPrice,
		UserName:      req.UserName,
		Email:         req.Email,
		City:          req.City,
		Address:       req.Address,
		ZipCode:       req.ZipCode,
		Colors:        req.Colors,
		PaidStatus:    false,
		TransactionID: transactionID,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		// The remote session already exists; there is nothing to roll back on
		// our side, and no order row was written. The operator-facing log line
		// is the reconciliation trail.
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("service: failed to persist pending order after gateway session was created")
		return nil, fmt.Errorf("service: failed to persist pending order: %w", err)
	}

	log.Info().
		Str("transaction_id", transactionID).
		Stringer("product_id", req.ProductID).
		Float64("total_price", totalPrice).
		Msg("service: pending order created")

	return &CheckoutResult{URL: url, Order: o}, nil
}

// ReconcileSuccess flips the order to paid. Repeated calls are no-op updates
// that still succeed; an unknown transaction id is ErrNotFound and never
// creates a record.
func (s *service) ReconcileSuccess(ctx context.Context, transactionID string) error {
	err := s.repo.MarkPaid(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Str("transaction_id", transactionID).Msg("service: success callback for unknown transaction")
			return ErrNotFound
		}
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("service: failed to mark order paid")
		return fmt.Errorf("service: failed to mark order paid: %w", err)
	}

	log.Info().Str("transaction_id", transactionID).Msg("service: order marked paid")
	return nil
}

// ReconcileFailure removes the pending order. A paid order is never deleted,
// and a second failure callback gets ErrNotFound.
func (s *service) ReconcileFailure(ctx context.Context, transactionID string) error {
	err := s.repo.DeleteUnpaid(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Str("transaction_id", transactionID).Msg("service: fail callback matched no pending order")
			return ErrNotFound
		}
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("service: failed to delete pending order")
		return fmt.Errorf("service: failed to delete pending order: %w", err)
	}

	log.Info().Str("transaction_id", transactionID).Msg("service: pending order removed")
	return nil
}

func (s *service) GetByTransactionID(ctx context.Context, transactionID string) (*Order, error) {
	o, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("service: failed to fetch order by transaction id")
		return nil, fmt.Errorf("service: failed to fetch order by transaction id: %w", err)
	}

	return o, nil
}
