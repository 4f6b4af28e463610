package main

import (
	"testing"

	"sangrurestate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserCreatesProfileAtomically(t *testing.T) {
	setupTestDB(t)

	user, err := RegisterUser("neha@example.com", "secret1", "Neha Sharma", "555-9999")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	var pcount int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&pcount).Error)
	assert.Equal(t, int64(1), pcount, "exactly one profile per registered user")

	var p models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&p).Error)
	assert.Equal(t, "Neha Sharma", p.FullName)
	assert.Equal(t, "555-9999", p.Phone)
	assert.Equal(t, "Sangrur", p.City)
}

func TestRegisterUserValidation(t *testing.T) {
	setupTestDB(t)

	cases := []struct {
		name     string
		email    string
		password string
		fullName string
		field    string
	}{
		{"missing email", "", "secret1", "A B", "email"},
		{"bad email", "not-an-address", "secret1", "A B", "email"},
		{"short password", "a@example.com", "123", "A B", "password"},
		{"missing name", "a@example.com", "secret1", "  ", "full_name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RegisterUser(tc.email, tc.password, tc.fullName, "")
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterUser("dup@example.com", "secret1", "First One", "")
	require.NoError(t, err)
	_, err = RegisterUser("DUP@example.com", "secret1", "Second One", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve, "email comparison is case-insensitive")
	assert.Contains(t, ve.Fields, "email")
}

func TestAuthenticate(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterUser("auth@example.com", "secret1", "Auth User", "")
	require.NoError(t, err)

	user, err := Authenticate("auth@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "auth@example.com", user.Email)

	_, err = Authenticate("auth@example.com", "wrong")
	var ae *AuthenticationError
	assert.ErrorAs(t, err, &ae)

	_, err = Authenticate("ghost@example.com", "secret1")
	assert.ErrorAs(t, err, &ae, "unknown account looks identical to bad password")
}

func TestPasswordNeverStoredPlain(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterUser("hash@example.com", "plaintext-pw", "Hash User", "")
	require.NoError(t, err)
	var u models.User
	require.NoError(t, db.Where("email = ?", "hash@example.com").First(&u).Error)
	assert.NotContains(t, string(u.HashedPassword), "plaintext-pw")
}
