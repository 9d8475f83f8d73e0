package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Run("valid usernames", func(t *testing.T) {
		for _, name := range []string{"alice", "Bob-42", "chef_anna", "j.doe", "Xy"} {
			assert.NoError(t, ValidateUsername(name), name)
		}
	})

	t.Run("reserved me in any case", func(t *testing.T) {
		for _, name := range []string{"me", "Me", "ME", "mE"} {
			assert.Error(t, ValidateUsername(name), name)
		}
	})

	t.Run("but names containing me are fine", func(t *testing.T) {
		assert.NoError(t, ValidateUsername("melissa"))
		assert.NoError(t, ValidateUsername("acme"))
	})

	t.Run("invalid patterns", func(t *testing.T) {
		cases := []string{
			"",
			"a",                      // too short
			"1starts-with-digit",
			"_leading",
			"has space",
			"way-too-long-username-over-limit",
			"bad!char",
		}
		for _, name := range cases {
			assert.Error(t, ValidateUsername(name), name)
		}
	})
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("lettersonly"))
	assert.Error(t, ValidatePassword("1234567890"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail("@example.com"))
}
