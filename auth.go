package main

import (
	"net/mail"
	"strings"

	"sangrurestate/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser creates a User (email is the login name) and its one-to-one
// Profile in a single transaction, so a profile write failure never leaves an
// orphan account. No session is issued; the caller logs in separately.
func RegisterUser(email, password, fullName, phone string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, validationErr("email", "required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationErr("email", "not a valid email address")
	}
	if len(password) < 6 { // basic password policy
		return nil, validationErr("password", "too short (min 6)")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, validationErr("full_name", "required")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, validationErr("email", "already registered")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	// ensure role exists (idempotent)
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err != nil {
		role = models.Role{Name: "user", Description: "regular user"}
		if err2 := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err2 != nil {
			return nil, err2
		}
	}
	rid := role.ID
	user := models.User{Email: email, HashedPassword: hashedPassword, RoleID: &rid}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:   user.ID,
			FullName: strings.TrimSpace(fullName),
			Phone:    strings.TrimSpace(phone),
			City:     "Sangrur",
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, validationErr("email", "already registered")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the email/password pair and returns the user.
func Authenticate(email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, &AuthenticationError{Reason: "invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, &AuthenticationError{Reason: "invalid credentials"}
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "already exists")
}
