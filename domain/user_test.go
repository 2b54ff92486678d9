package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser(t *testing.T) {
	bcryptCost = bcrypt.MinCost

	t.Run("valid user", func(t *testing.T) {
		id := uuid.New()
		user, err := NewUser(UserConfig{ID: id, Username: "maze_runner", PlainPassword: "corridor-Lantern-93!"})
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.NotEqual(t, "corridor-Lantern-93!", user.PasswordHash)
		assert.True(t, user.VerifyPassword("corridor-Lantern-93!"))
		assert.False(t, user.VerifyPassword("corridor"))
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("invalid usernames", func(t *testing.T) {
		cases := map[string]error{
			"ab":                        ErrUsernameTooShort,
			"a_very_long_username_12345": ErrUsernameTooLong,
			"no spaces":                 ErrInvalidUsername,
		}
		for name, want := range cases {
			_, err := NewUser(UserConfig{ID: uuid.New(), Username: name, PlainPassword: "corridor-Lantern-93!"})
			assert.ErrorIs(t, err, want, name)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := NewUser(UserConfig{ID: uuid.New(), Username: "maze_runner", PlainPassword: "password"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}
