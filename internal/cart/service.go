package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidCount = errors.New("cart item count must be a positive integer")

type Service interface {
	AddItem(ctx context.Context, item *Item) (*Item, error)
	ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error)
	RemoveItem(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, item *Item) (*Item, error) {
	if item.Count <= 0 {
		return nil, ErrInvalidCount
	}

	item.ID = uuid.Nil

	if err := s.repo.Add(ctx, item); err != nil {
		log.Error().Err(err).Stringer("user_id", item.UserID).Msg("service: failed to add cart item")
		return nil, fmt.Errorf("service: failed to add cart item: %w", err)
	}

	return item, nil
}

func (s *service) ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("service: failed to list cart items")
		return nil, fmt.Errorf("service: failed to list cart items: %w", err)
	}

	return items, nil
}

func (s *service) RemoveItem(ctx context.Context, id, userID uuid.UUID) error {
	err := s.repo.Remove(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Stringer("item_id", id).Msg("service: failed to remove cart item")
		return fmt.Errorf("service: failed to remove cart item: %w", err)
	}

	return nil
}
