package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := context.Background()
		userID := uint(100)
		email := "user@example.com"
		role := "user"

		ctx = SetUserContext(ctx, userID, email, role)
		assert.NotNil(t, ctx)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)

		assert.Equal(t, email, GetUserEmailFromContext(ctx))
		assert.Equal(t, role, GetUserRoleFromContext(ctx))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		ctx := context.Background()
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid 10 digits", "3001234567", true},
		{"too short", "300123456", false},
		{"too long", "30012345678", false},
		{"contains letters", "30012345ab", false},
		{"contains dashes", "300-123-4567", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPhone(tt.input))
		})
	}
}

func TestValidPostalCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid 6 digits", "440000", true},
		{"five digits", "44000", false},
		{"seven digits", "4400001", false},
		{"alphanumeric", "44O000", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPostalCode(tt.input))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("buyer@example.com"))
	assert.True(t, ValidEmail("a@b.co"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@domain"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestGenerateOrderNumber(t *testing.T) {
	n1 := GenerateOrderNumber()
	n2 := GenerateOrderNumber()

	assert.True(t, strings.HasPrefix(n1, "ORD-"))
	assert.True(t, strings.HasPrefix(n2, "ORD-"))
	assert.NotEqual(t, n1, n2)
}

func TestToUint(t *testing.T) {
	n, err := ToUint("42")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), n)

	_, err = ToUint("abc")
	assert.Error(t, err)
}
