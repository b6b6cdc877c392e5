// Package community holds the rules behind the feed: like toggling, share links and content hygiene.
package community

import (
	"html"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const (
	MaxPostLength    = 5000
	MaxCommentLength = 1000
)

var strict = bluemonday.StrictPolicy()

// Sanitize strips all markup from user-written text and trims surrounding space.
// The result is plain text exactly as typed: entity text such as "&lt;b&gt;" is
// kept literally and never decoded into markup.
func Sanitize(text string) string {
	escaped := strings.ReplaceAll(text, "&", "&amp;")
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(escaped)))
}

// ToggleLike removes userID from likes when present and appends it otherwise.
// It returns a new slice and whether the user now likes the post.
func ToggleLike(likes []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, bool) {
	next := make([]uuid.UUID, 0, len(likes)+1)
	removed := false
	for _, id := range likes {
		if id == userID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if removed {
		return next, false
	}
	return append(next, userID), true
}

// ShareLink is the path a shared post is reachable at.
func ShareLink(postID int64) string {
	return "/post/" + strconv.FormatInt(postID, 10)
}
