package ports

import (
	"context"

	"github.com/rankforge/agency-api/internal/core/domain"
)

// CreatePostInput carries a new blog post. Content is raw HTML from the
// editor; the service sanitizes it before persistence.
type CreatePostInput struct {
	Title     string
	Excerpt   string
	Content   string
	AuthorID  string
	Published bool
}

// UpdatePostInput carries a partial post update addressed by slug. Nil
// pointers mean "leave unchanged".
type UpdatePostInput struct {
	Slug      string
	Title     *string
	Excerpt   *string
	Content   *string
	Published *bool
}

// PostService defines use-case operations for the blog CMS. Posts are
// addressed by slug on the wire; ids stay internal.
type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, slug string) error
	GetPostBySlug(ctx context.Context, who Identity, slug string) (*domain.Post, error)
	// ListPosts returns published posts for everyone; admins also see drafts.
	ListPosts(ctx context.Context, who Identity) ([]*domain.Post, error)
}
