package main

import (
	"net/http"

	"sangrurestate/models"

	"github.com/gin-gonic/gin"
)

// submitContactHandler stores a contact-form message. Public, no relation to
// any other record; the response is a bare acknowledgement.
func submitContactHandler(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg := models.Contact{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
	if err := db.Create(&msg).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "received"})
}

// listContactsHandler returns the contact inbox, newest-first. Administrators only.
func listContactsHandler(c *gin.Context) {
	if !isAdmin(c) {
		writeError(c, &AuthorizationError{Reason: "administrator access required"})
		return
	}
	var msgs []models.Contact
	if err := db.Order("created_at desc, id desc").Find(&msgs).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
