package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	placeholders, args := Placeholders([]string{"a", "b", "c"}, 2)
	assert.Equal(t, "$3, $4, $5", placeholders)
	assert.Equal(t, []any{"a", "b", "c"}, args)
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "asha.rao", EmailLocalPart("asha.rao@example.com"))
	assert.Equal(t, "nobody", EmailLocalPart("nobody"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "Asha", FirstNonEmpty("", "  ", "Asha", "Ravi"))
	assert.Equal(t, "", FirstNonEmpty())
}
