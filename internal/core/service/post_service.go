package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

// htmlSanitizer strips anything outside the user-generated-content policy
// from post bodies before they are stored.
var htmlSanitizer = sync.OnceValue(func() *bluemonday.Policy {
	return bluemonday.UGCPolicy()
})

// PostService implements the blog CMS use cases.
type PostService struct {
	repo ports.PostRepository
	log  zerolog.Logger
}

func NewPostService(repo ports.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

// CreatePost stores a new article under a slug derived from its title.
func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	slug := slugify(input.Title)
	if existing, err := s.repo.FindBySlug(ctx, slug); err == nil && existing != nil {
		return nil, domain.ErrSlugExists
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     input.Title,
		Excerpt:   input.Excerpt,
		Content:   htmlSanitizer().Sanitize(input.Content),
		AuthorID:  input.AuthorID,
		Published: input.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.Error().Err(err).Str("slug", slug).Msg("failed to create post")
		return nil, err
	}

	s.log.Info().Str("post_id", post.ID).Str("slug", slug).Msg("post created")
	return post, nil
}

// UpdatePost applies a partial update; the slug never changes after creation
// so published URLs stay stable.
func (s *PostService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.Content != nil {
		post.Content = htmlSanitizer().Sanitize(*input.Content)
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, slug string) error {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, post.ID)
}

// GetPostBySlug returns a post. Unpublished drafts are only visible to admins.
func (s *PostService) GetPostBySlug(ctx context.Context, who ports.Identity, slug string) (*domain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published && !who.IsAdmin() {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// ListPosts returns published posts; admins also see drafts.
func (s *PostService) ListPosts(ctx context.Context, who ports.Identity) ([]*domain.Post, error) {
	return s.repo.List(ctx, ports.ListPostsFilter{PublishedOnly: !who.IsAdmin()})
}

// slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
