package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/linkwise/linkwise/internal/middleware"
	"github.com/linkwise/linkwise/internal/model"
	"github.com/linkwise/linkwise/internal/service"
	"github.com/linkwise/linkwise/internal/store"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Submit handles POST /api/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	postID, errMsg := middleware.ValidatePostID(req.PostID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.PostID = postID

	if req.VoterID == "" {
		req.VoterID = c.Get("X-Voter-ID")
	}
	voterID, errMsg := middleware.ValidateVoterID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	resp, err := h.svc.Submit(c.Context(), req)
	if errors.Is(err, store.ErrConflict) {
		// Concurrent voters on the same post can trip a serialization
		// failure; one immediate retry resolves it in practice.
		resp, err = h.svc.Submit(c.Context(), req)
	}
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCategory):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CATEGORY",
				"Invalid category. Must be one of: trusted, suspicious, untrusted")
		case errors.Is(err, store.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Post not found")
		case errors.Is(err, store.ErrConflict):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "CONFLICT", "Vote conflicted with a concurrent write, please retry")
		case errors.Is(err, store.ErrUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Temporarily unable to record vote")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
		}
	}

	if Metrics.VotesTotal != nil {
		Metrics.VotesTotal.WithLabelValues(string(resp.Category)).Inc()
	}

	return c.JSON(resp)
}
