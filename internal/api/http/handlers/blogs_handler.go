package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campusclubs/club-blog-service/internal/api/dto"
	"github.com/campusclubs/club-blog-service/internal/auth"
	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/service"
	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

// BlogsHandler exposes the post endpoints.
type BlogsHandler struct {
	blogs *service.BlogService
}

// NewBlogsHandler constructs handler.
func NewBlogsHandler(blogService *service.BlogService) *BlogsHandler {
	return &BlogsHandler{blogs: blogService}
}

// ListPublished handles GET /blogs.
func (h *BlogsHandler) ListPublished(c *fiber.Ctx) error {
	blogs, err := h.blogs.ListPublished(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"blogs": toBlogResponses(blogs)})
}

// GetPublished handles GET /blogs/:id.
func (h *BlogsHandler) GetPublished(c *fiber.Ctx) error {
	blog, err := h.blogs.GetPublished(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"blog": toBlogResponse(blog)})
}

// Create handles POST /blogs.
func (h *BlogsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return fiber.NewError(http.StatusBadRequest, "title and content required")
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("access token required")
	}

	blog, err := h.blogs.Create(c.UserContext(), claims.UserID, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Blog created successfully",
		"blog":    toBlogResponse(blog),
	})
}

// ListMine handles GET /blogs/mine.
func (h *BlogsHandler) ListMine(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("access token required")
	}

	blogs, err := h.blogs.ListMine(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"blogs": toBlogResponses(blogs)})
}

// Submit handles POST /blogs/:id/submit.
func (h *BlogsHandler) Submit(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("access token required")
	}

	blog, err := h.blogs.Submit(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Blog submitted for review successfully",
		"blog":    toBlogResponse(blog),
	})
}

func toBlogResponse(b *domain.Blog) dto.BlogResponse {
	return dto.BlogResponse{
		ID:              b.ID,
		Title:           b.Title,
		Content:         b.Content,
		AuthorID:        b.AuthorID,
		AuthorName:      b.AuthorName,
		Status:          string(b.Status),
		RejectionReason: b.RejectionReason,
		CreatedAt:       b.CreatedAt,
		PublishedAt:     b.PublishedAt,
	}
}

func toBlogResponses(blogs []*domain.Blog) []dto.BlogResponse {
	out := make([]dto.BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResponse(b))
	}
	return out
}
