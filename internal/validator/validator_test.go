package validator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddErrorKeepsFirstMessage(t *testing.T) {
	v := New()
	v.AddError("username", "first")
	v.AddError("username", "second")

	assert.False(t, v.IsValid())
	assert.Equal(t, "first", v.Errors["username"])
}

func TestCheckNotBlank(t *testing.T) {
	v := New()
	v.CheckNotBlank("   ", "content", "must be provided")
	v.CheckNotBlank("water", "title", "must be provided")

	assert.Equal(t, map[string]string{"content": "must be provided"}, v.Errors)
}

func TestCheckEmail(t *testing.T) {
	v := New()
	v.CheckEmail("rain@barrel.org", "must be a valid email address")
	assert.True(t, v.IsValid())

	v.CheckEmail("not-an-email", "must be a valid email address")
	assert.Equal(t, "must be a valid email address", v.Errors["email"])
}

func TestUsernamePattern(t *testing.T) {
	for _, ok := range []string{"drip_saver", "A1", "_"} {
		assert.True(t, IsMatch(ok, UsernameRX), ok)
	}
	for _, bad := range []string{"", "has space", "dash-name", "émile"} {
		assert.False(t, IsMatch(bad, UsernameRX), bad)
	}
}

func TestCheckRange(t *testing.T) {
	v := New()
	v.CheckRange(45, -90, 90, "lat", "out of range")
	v.CheckRange(math.NaN(), -180, 180, "lon", "out of range")
	v.CheckRange(200, -180, 180, "other", "out of range")

	assert.NotContains(t, v.Errors, "lat")
	assert.Contains(t, v.Errors, "lon")
	assert.Contains(t, v.Errors, "other")
}

func TestPermittedValueAndUnique(t *testing.T) {
	assert.True(t, PermittedValue("low", "high", "medium", "low"))
	assert.False(t, PermittedValue("extreme", "high", "medium", "low"))
	assert.True(t, IsUnique([]string{"a", "b"}))
	assert.False(t, IsUnique([]string{"a", "a"}))
}
