package ports

import (
	"context"

	"github.com/rankforge/agency-api/internal/core/domain"
)

// ListPostsFilter carries query parameters for listing blog posts.
type ListPostsFilter struct {
	PublishedOnly bool
}

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
}
