package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var ErrBodyRequired = errors.New("comment body is required")

type Service interface {
	AddComment(ctx context.Context, c *Comment) (*Comment, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddComment(ctx context.Context, c *Comment) (*Comment, error) {
	if c.Body == "" {
		return nil, ErrBodyRequired
	}

	c.ID = uuid.Nil

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error().Err(err).Stringer("product_id", c.ProductID).Msg("service: failed to create comment")
		return nil, fmt.Errorf("service: failed to create comment: %w", err)
	}

	return c, nil
}

// ListByProduct returns top-level comments with their replies nested one level
// deep, in creation order.
func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]Comment, error) {
	flat, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		log.Error().Err(err).Stringer("product_id", productID).Msg("service: failed to list comments")
		return nil, fmt.Errorf("service: failed to list comments: %w", err)
	}

	return nest(flat), nil
}

func (s *service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Stringer("comment_id", id).Msg("service: failed to delete comment")
		return fmt.Errorf("service: failed to delete comment: %w", err)
	}

	return nil
}

func nest(flat []Comment) []Comment {
	parents := make([]Comment, 0)
	index := make(map[uuid.UUID]int)

	for _, c := range flat {
		if c.ParentID == nil {
			parents = append(parents, c)
			index[c.ID] = len(parents) - 1
		}
	}
	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			parents[i].Replies = append(parents[i].Replies, c)
		}
	}

	return parents
}
