package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLogin(t *testing.T) {
	assert.True(t, IsValidLogin("user_123"))
	assert.True(t, IsValidLogin("abc"))

	assert.False(t, IsValidLogin("ab"))                    // too short
	assert.False(t, IsValidLogin("user name"))             // space
	assert.False(t, IsValidLogin("user-name"))             // dash
	assert.False(t, IsValidLogin(strings.Repeat("a", 31))) // too long
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("a.b+c@sub.example.org"))

	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("password1"))
	assert.True(t, IsValidPassword("1234abcd"))

	assert.False(t, IsValidPassword("short1"))    // too short
	assert.False(t, IsValidPassword("lettersonly")) // no digit
	assert.False(t, IsValidPassword("12345678"))  // no letter
}
