package main

import (
	"net/http"
	"strings"

	"sangrurestate/models"

	"github.com/gin-gonic/gin"
)

// submitLeadHandler records a buyer's interest in a property. Public by
// design: anonymous visitors supply just a name and phone. When a valid
// bearer token accompanies the request the lead is linked to that account.
func submitLeadHandler(c *gin.Context) {
	var req struct {
		PropertyID uint   `json:"property_id" binding:"required"`
		BuyerName  string `json:"buyer_name" binding:"required"`
		BuyerPhone string `json:"buyer_phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var prop models.Property
	if err := db.First(&prop, req.PropertyID).Error; err != nil {
		writeError(c, &NotFoundError{Entity: "property"})
		return
	}
	// Optional identity: a missing or bad token just means an anonymous lead.
	var buyerID *uint
	if email, _, ok := parseBearer(c.GetHeader("Authorization")); ok {
		var buyer models.User
		if err := db.Where("email = ?", email).First(&buyer).Error; err == nil {
			buyerID = &buyer.ID
		}
	}
	lead := models.Lead{
		PropertyID: prop.ID,
		BuyerID:    buyerID,
		SellerID:   prop.OwnerID, // snapshot of the owner at submission time
		BuyerName:  strings.TrimSpace(req.BuyerName),
		BuyerPhone: strings.TrimSpace(req.BuyerPhone),
		Status:     "New",
	}
	if err := db.Create(&lead).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": lead.ID})
}

// sellerLeadsHandler lists leads against the caller's properties,
// newest-first. Administrators see every lead.
func sellerLeadsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		writeError(c, &AuthorizationError{Reason: "no valid identity"})
		return
	}
	var leads []models.Lead
	q := db.Model(&models.Lead{}).Preload("Property")
	if !isAdmin(c) {
		q = q.Joins("JOIN properties ON properties.id = leads.property_id").
			Where("properties.owner_id = ?", user.ID)
	}
	if err := q.Order("leads.created_at desc, leads.id desc").Find(&leads).Error; err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(leads))
	for _, l := range leads {
		out = append(out, gin.H{
			"id":          l.ID,
			"property_id": l.PropertyID,
			"property":    l.Property.Title,
			"buyer_name":  l.BuyerName,
			"buyer_phone": l.BuyerPhone,
			"status":      l.Status,
			"created_at":  l.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// myInterestsHandler lists the caller's own submitted leads, newest-first,
// joined with the referenced listing. Anonymous leads never appear here. A
// lead whose property failed to load is skipped rather than failing the
// whole listing.
func myInterestsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		writeError(c, &AuthorizationError{Reason: "no valid identity"})
		return
	}
	var leads []models.Lead
	q := db.Preload("Property").
		Where("buyer_id = ?", user.ID).
		Order("created_at desc, id desc")
	if err := q.Find(&leads).Error; err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(leads))
	for _, l := range leads {
		if l.Property.ID == 0 {
			continue
		}
		out = append(out, gin.H{
			"id":       l.ID,
			"status":   l.Status,
			"date":     l.CreatedAt.Format("2006-01-02"),
			"property": gin.H{
				"id":       l.Property.ID,
				"title":    l.Property.Title,
				"location": l.Property.Location,
				"price":    l.Property.Price,
			},
		})
	}
	c.JSON(http.StatusOK, out)
}
