package store

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/linkwise/linkwise/internal/model"
)

// pageCursor carries the keyset position of the last post on a page.
// TotalVotes is only meaningful for SortTop.
type pageCursor struct {
	CreatedAt  time.Time
	ID         string
	TotalVotes int
}

// encodeCursor renders an opaque continuation token for the given post.
func encodeCursor(p model.Post) string {
	raw := fmt.Sprintf("%s|%s|%d", p.CreatedAt.UTC().Format(time.RFC3339Nano), p.ID, p.TotalVotes)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor parses a continuation token produced by encodeCursor.
func decodeCursor(s string) (pageCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return pageCursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 {
		return pageCursor{}, ErrInvalidCursor
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return pageCursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	votes, err := strconv.Atoi(parts[2])
	if err != nil {
		return pageCursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return pageCursor{CreatedAt: ts, ID: parts[1], TotalVotes: votes}, nil
}
