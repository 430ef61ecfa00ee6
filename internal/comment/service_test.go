package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/bazar-backend/internal/comment"
)

type mockRepository struct {
	createFunc        func(ctx context.Context, c *comment.Comment) error
	listByProductFunc func(ctx context.Context, productID uuid.UUID) ([]comment.Comment, error)
	deleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepository) Create(ctx context.Context, c *comment.Comment) error {
	return m.createFunc(ctx, c)
}

func (m *mockRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]comment.Comment, error) {
	return m.listByProductFunc(ctx, productID)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func TestService_AddComment(t *testing.T) {
	t.Run("empty_body", func(t *testing.T) {
		svc := comment.NewService(&mockRepository{})
		_, err := svc.AddComment(context.Background(), &comment.Comment{Author: "Rahim"})
		assert.ErrorIs(t, err, comment.ErrBodyRequired)
	})

	t.Run("success", func(t *testing.T) {
		var saved *comment.Comment
		repo := &mockRepository{
			createFunc: func(ctx context.Context, c *comment.Comment) error {
				saved = c
				return nil
			},
		}
		svc := comment.NewService(repo)

		_, err := svc.AddComment(context.Background(), &comment.Comment{Author: "Rahim", Body: "nice product"})
		require.NoError(t, err)
		assert.Equal(t, "nice product", saved.Body)
	})
}

func TestService_ListByProduct_NestsReplies(t *testing.T) {
	productID := uuid.Must(uuid.NewV4())
	parentA := uuid.Must(uuid.NewV4())
	parentB := uuid.Must(uuid.NewV4())
	replyA1 := uuid.Must(uuid.NewV4())
	replyA2 := uuid.Must(uuid.NewV4())

	base := time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)

	flat := []comment.Comment{
		{ID: parentA, ProductID: productID, Author: "Rahim", Body: "first", CreatedAt: base},
		{ID: parentB, ProductID: productID, Author: "Karim", Body: "second", CreatedAt: base.Add(time.Minute)},
		{ID: replyA1, ProductID: productID, ParentID: &parentA, Author: "Karim", Body: "reply one", CreatedAt: base.Add(2 * time.Minute)},
		{ID: replyA2, ProductID: productID, ParentID: &parentA, Author: "Rahim", Body: "reply two", CreatedAt: base.Add(3 * time.Minute)},
	}

	repo := &mockRepository{
		listByProductFunc: func(ctx context.Context, id uuid.UUID) ([]comment.Comment, error) {
			return flat, nil
		},
	}
	svc := comment.NewService(repo)

	got, err := svc.ListByProduct(context.Background(), productID)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, parentA, got[0].ID)
	assert.Equal(t, parentB, got[1].ID)

	wantReplies := []comment.Comment{flat[2], flat[3]}
	if diff := cmp.Diff(wantReplies, got[0].Replies); diff != "" {
		t.Errorf("replies mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got[1].Replies)
}
