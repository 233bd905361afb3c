package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"user@",
		"user@domain",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("manager1"))
	assert.True(t, IsValidUsername("first.last-name"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("has spaces"))
	assert.False(t, IsValidUsername(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-10-02")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("02-10-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"pending", "approved", "rejected", "cancelled"}
	assert.True(t, IsInSlice("approved", statuses))
	assert.False(t, IsInSlice("expired", statuses))
	assert.False(t, IsInSlice("", statuses))
}
