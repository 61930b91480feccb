package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/linkwise/linkwise/internal/middleware"
	"github.com/linkwise/linkwise/internal/model"
	"github.com/linkwise/linkwise/internal/service"
	"github.com/linkwise/linkwise/internal/store"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// GetPage handles GET /api/posts?sort=new&limit=20&cursor=...
func (h *PostHandler) GetPage(c fiber.Ctx) error {
	sort := model.ParseSortMode(c.Query("sort"))
	limit := fiber.Query(c, "limit", 20)
	if limit < 1 || limit > 100 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "limit must be between 1 and 100")
	}
	cursor := c.Query("cursor")

	page, err := h.svc.GetPage(c.Context(), sort, limit, cursor)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCursor) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CURSOR", "Malformed pagination cursor")
		}
		if errors.Is(err, store.ErrUnavailable) {
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Temporarily unable to fetch posts")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch posts")
	}

	return c.JSON(page)
}

// Create handles POST /api/posts
func (h *PostHandler) Create(c fiber.Ctx) error {
	var req model.NewPost
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	url, errMsg := middleware.ValidateURL(req.URL)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.URL = url

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Title = title
	req.Description = middleware.TruncateDescription(req.Description)

	// Identity issuance is the auth layer's problem; we take the header.
	if owner := c.Get("X-User-ID"); owner != "" {
		req.OwnerID = owner
	}
	ownerID, errMsg := middleware.ValidateVoterID(req.OwnerID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "ownerId is required")
	}
	req.OwnerID = ownerID

	post, err := h.svc.Create(c.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Temporarily unable to create post")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create post")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
