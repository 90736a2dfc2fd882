package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campusclubs/club-blog-service/internal/api/dto"
	"github.com/campusclubs/club-blog-service/internal/auth"
	"github.com/campusclubs/club-blog-service/internal/service"
	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

// AdminHandler exposes membership decision endpoints.
type AdminHandler struct {
	admin *service.AdminService
	blogs *service.BlogService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, blogService *service.BlogService) *AdminHandler {
	return &AdminHandler{admin: adminService, blogs: blogService}
}

// PendingUsers handles GET /admin/pending-users.
func (h *AdminHandler) PendingUsers(c *fiber.Ctx) error {
	users, err := h.admin.PendingUsers(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return err
	}

	out := make([]dto.PendingUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.PendingUserResponse{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			RegistrationNo: u.RegistrationNo,
			Year:           u.Year,
			Domain:         u.Domain,
			Status:         string(u.Status),
			CreatedAt:      u.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"users": out})
}

// ApproveUser handles POST /admin/approve-user.
func (h *AdminHandler) ApproveUser(c *fiber.Ctx) error {
	var req dto.ApproveUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" {
		return fiber.NewError(http.StatusBadRequest, "userId required")
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("access token required")
	}

	user, err := h.admin.ApproveUser(c.UserContext(), claims.UserID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User approved. Activation email sent to " + user.Email + ".",
		"user": dto.UserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Status: string(user.Status),
		},
	})
}

// RejectUser handles POST /admin/reject-user.
func (h *AdminHandler) RejectUser(c *fiber.Ctx) error {
	var req dto.RejectUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" {
		return fiber.NewError(http.StatusBadRequest, "userId required")
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("access token required")
	}

	user, err := h.admin.RejectUser(c.UserContext(), claims.UserID, req.UserID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User registration for " + user.Email + " has been rejected.",
	})
}

// PendingBlogs handles GET /admin/pending-blogs.
func (h *AdminHandler) PendingBlogs(c *fiber.Ctx) error {
	blogs, err := h.blogs.ListPendingReview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"blogs": toBlogResponses(blogs)})
}

// ReviewBlog handles POST /admin/review-blog.
func (h *AdminHandler) ReviewBlog(c *fiber.Ctx) error {
	var req dto.ReviewBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.BlogID == "" || (req.Action != "approve" && req.Action != "reject") {
		return fiber.NewError(http.StatusBadRequest, "blogId and action approve|reject required")
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("access token required")
	}

	blog, err := h.blogs.Review(c.UserContext(), claims.UserID, req.BlogID, req.Action == "approve", req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Blog review recorded",
		"blog":    toBlogResponse(blog),
	})
}
