package stringutils

import (
	"fmt"
	"strings"
)

// Placeholders builds "$n" placeholders for an IN (...) clause, numbered from offset+1.
func Placeholders[T any](list []T, offset int) (placeholders string, args []any) {
	parts := make([]string, len(list))
	args = make([]any, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprintf("$%d", offset+i+1)
		args[i] = item
	}

	return strings.Join(parts, ", "), args
}

// EmailLocalPart returns the part of an address before '@', or the whole input when there is none.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
