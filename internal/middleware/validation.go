package middleware

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxURLLen         = 2048 // posts.url VARCHAR(2048)
	MaxTitleLen       = 200  // posts.title VARCHAR(200)
	MaxDescriptionLen = 1000 // posts.description VARCHAR(1000)
	MaxVoterIDLen     = 64   // votes.voter_id VARCHAR(64)
)

// voterIDRe matches voter identities issued by the auth layer: opaque
// alphanumeric tokens with dash and underscore.
var voterIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePostID checks that a post ID is a well-formed UUID.
func ValidatePostID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "postId is required"
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "postId must be a valid UUID"
	}
	return id, ""
}

// ValidateVoterID checks that a voter identity is well-formed and within
// DB limits.
func ValidateVoterID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "voterId is required"
	}
	if len(id) > MaxVoterIDLen {
		return "", "voterId must be at most 64 characters"
	}
	if !voterIDRe.MatchString(id) {
		return "", "voterId contains invalid characters"
	}
	return id, ""
}

// ValidateURL checks that a submitted link is an absolute http(s) URL.
func ValidateURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "url is required"
	}
	if len(raw) > MaxURLLen {
		return "", "url must be at most 2048 characters"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "url must be an absolute URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "url scheme must be http or https"
	}
	return raw, ""
}

// ValidateTitle trims a post title and enforces the length limit.
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "title must be at most 200 characters"
	}
	return title, ""
}

// TruncateDescription trims and truncates a description to DB limits.
func TruncateDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescriptionLen {
		desc = desc[:MaxDescriptionLen]
	}
	return desc
}
