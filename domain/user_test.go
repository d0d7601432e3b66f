package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	strong := "violet-Harbor-lantern-93!"

	t.Run("Valid user", func(t *testing.T) {
		id := uuid.New()
		u, err := NewUser(UserConfig{ID: id, Username: "maze_runner", PlainPassword: strong})
		require.NoError(t, err)

		assert.Equal(t, id, u.ID)
		assert.Equal(t, "maze_runner", u.Username)
		assert.NotEqual(t, strong, u.PasswordHash)
		assert.True(t, u.VerifyPassword(strong))
		assert.False(t, u.VerifyPassword("wrong"))
		assert.False(t, u.CreatedAt.IsZero())
	})

	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"Short username", "ab", strong, ErrUsernameTooShort},
		{"Long username", "abcdefghijklmnopqrstu", strong, ErrUsernameTooLong},
		{"Bad characters", "maze runner", strong, ErrUsernameFormat},
		{"Weak password", "maze_runner", "password", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(UserConfig{ID: uuid.New(), Username: tt.username, PlainPassword: tt.password})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBoardOwnership(t *testing.T) {
	owner := uuid.New()
	b := NewBoard(owner, nil)

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.True(t, b.OwnedBy(owner))
	assert.False(t, b.OwnedBy(uuid.New()))

	before := b.UpdatedAt
	b.Touch()
	assert.False(t, b.UpdatedAt.Before(before))
}
