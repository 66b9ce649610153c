package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rankforge/agency-api/internal/core/ports"
)

// PostHandler handles the blog CMS endpoints. Mutations are admin-only
// (enforced by route middleware); reads are public but drafts stay hidden
// from non-admins.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Title     string `json:"title"   validate:"required"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

type updatePostRequest struct {
	Title     *string `json:"title"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// Create handles POST /api/posts.
//
// @Summary      Create a blog post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		AuthorID:  who.UserID,
		Published: req.Published,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /api/posts/:slug.
//
// @Summary      Update a blog post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string             true  "Post slug"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  errorResponse
// @Router       /api/posts/{slug} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.UpdatePost(c.Request().Context(), ports.UpdatePostInput{
		Slug:      c.Param("slug"),
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/posts/:slug.
//
// @Summary      Delete a blog post
// @Tags         posts
// @Security     BearerAuth
// @Param        slug  path  string  true  "Post slug"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{slug} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /api/posts.
//
// @Summary      List blog posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	// Identity is optional here: anonymous readers get published posts only.
	who, _ := ctxIdentity(c)

	posts, err := h.service.ListPosts(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetBySlug handles GET /api/posts/:slug.
//
// @Summary      Get a blog post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  errorResponse
// @Router       /api/posts/{slug} [get]
func (h *PostHandler) GetBySlug(c echo.Context) error {
	who, _ := ctxIdentity(c)

	post, err := h.service.GetPostBySlug(c.Request().Context(), who, c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
