package main

import (
	"net/http"
	"strconv"
	"strings"

	"sangrurestate/models"
	"sangrurestate/pkg/imagestore"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// siteBrand is the "listed by" fallback for listings with no resolvable owner.
const siteBrand = "Sangrur Estates"

func fileStore() *imagestore.Store {
	return imagestore.New(uploadBaseDir(), maxUploadBytes())
}

// listedBy picks the display name for a listing: owner's first name, then
// login email, then the site brand.
func listedBy(owner *models.User) string {
	if owner == nil || owner.ID == 0 {
		return siteBrand
	}
	if owner.Profile != nil {
		if fields := strings.Fields(owner.Profile.FullName); len(fields) > 0 {
			return fields[0]
		}
	}
	if owner.Email != "" {
		return owner.Email
	}
	return siteBrand
}

func imageViews(images []models.PropertyImage) []gin.H {
	out := make([]gin.H, 0, len(images))
	for _, img := range images {
		out = append(out, gin.H{"id": img.ID, "image": img.URL, "position": img.Position})
	}
	return out
}

func propertyView(p *models.Property) gin.H {
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"price":       p.Price,
		"location":    p.Location,
		"colony":      p.Colony,
		"type":        p.Type,
		"area":        p.Area,
		"beds":        p.Beds,
		"baths":       p.Baths,
		"status":      p.Status,
		"description": p.Description,
		"created_at":  p.CreatedAt,
		"listed_by":   listedBy(&p.Owner),
		"images":      imageViews(p.Images),
	}
}

func preloadProperty(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Preload("Owner.Profile")
}

// listPropertiesHandler returns every listing, newest-first. Public.
func listPropertiesHandler(c *gin.Context) {
	var props []models.Property
	if err := preloadProperty(db).Order("created_at desc, id desc").Find(&props).Error; err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(props))
	for i := range props {
		out = append(out, propertyView(&props[i]))
	}
	c.JSON(http.StatusOK, out)
}

// getPropertyHandler returns a single listing. Public.
func getPropertyHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, validationErr("id", "must be numeric"))
		return
	}
	var p models.Property
	if err := preloadProperty(db).First(&p, id).Error; err != nil {
		writeError(c, &NotFoundError{Entity: "property"})
		return
	}
	c.JSON(http.StatusOK, propertyView(&p))
}

// coerceCount applies the one beds/baths rule used on every entry path:
// absent or empty means 0, anything else must parse as a non-negative int.
func coerceCount(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, validationErr(field, "must be a non-negative integer")
	}
	return n, nil
}

// createPropertyHandler creates a listing plus its images from a multipart
// form. Property and image rows commit in one transaction; stored files are
// cleaned up if the transaction fails.
func createPropertyHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		writeError(c, &AuthorizationError{Reason: "no valid identity"})
		return
	}
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		writeError(c, validationErr("title", "required"))
		return
	}
	beds, err := coerceCount("beds", c.PostForm("beds"))
	if err != nil {
		writeError(c, err)
		return
	}
	baths, err := coerceCount("baths", c.PostForm("baths"))
	if err != nil {
		writeError(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, validationErr("uploaded_images", "multipart form required"))
		return
	}
	files := form.File["uploaded_images"]
	if len(files) == 0 {
		writeError(c, validationErr("uploaded_images", "at least one image is required"))
		return
	}
	limit := maxUploadBytes()
	for _, fh := range files {
		if fh.Size == 0 {
			writeError(c, validationErr("uploaded_images", "empty file: "+fh.Filename))
			return
		}
		if fh.Size > limit {
			writeError(c, validationErr("uploaded_images", "file too large: "+fh.Filename))
			return
		}
	}

	store := fileStore()
	stored := make([]imagestore.Stored, 0, len(files))
	cleanup := func() {
		for _, st := range stored {
			store.Remove(st.StorePath)
		}
	}
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			cleanup()
			writeError(c, err)
			return
		}
		st, err := store.Save("property_images", fh.Filename, src)
		src.Close()
		if err != nil {
			cleanup()
			switch err {
			case imagestore.ErrEmptyFile:
				writeError(c, validationErr("uploaded_images", "empty file: "+fh.Filename))
			case imagestore.ErrTooLarge:
				writeError(c, validationErr("uploaded_images", "file too large: "+fh.Filename))
			default:
				writeError(c, err)
			}
			return
		}
		stored = append(stored, st)
	}

	prop := models.Property{
		OwnerID:     user.ID,
		Title:       title,
		Price:       c.PostForm("price"),
		Location:    c.PostForm("location"),
		Colony:      c.PostForm("colony"),
		Type:        c.DefaultPostForm("type", "House"),
		Area:        c.PostForm("area"),
		Beds:        beds,
		Baths:       baths,
		Status:      c.DefaultPostForm("status", "Available"),
		Description: c.PostForm("description"),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prop).Error; err != nil {
			return err
		}
		for i, st := range stored {
			img := models.PropertyImage{
				PropertyID:  prop.ID,
				FileName:    files[i].Filename,
				StorePath:   st.StorePath,
				URL:         st.URL,
				ContentType: files[i].Header.Get("Content-Type"),
				Position:    i,
			}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		cleanup()
		writeError(c, err)
		return
	}
	// Thumbnails are presentation sugar; a decode failure here is backfilled
	// later by the thumbnailer process.
	for _, st := range stored {
		_ = imagestore.CreateThumb(store.BaseDir + "/" + st.StorePath)
	}
	c.JSON(http.StatusCreated, gin.H{"id": prop.ID})
}

// myListingsHandler returns the caller's listings, newest-first, each with
// its exact lead count and first image.
func myListingsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		writeError(c, &AuthorizationError{Reason: "no valid identity"})
		return
	}
	var props []models.Property
	q := db.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Where("owner_id = ?", user.ID).
		Order("created_at desc, id desc")
	if err := q.Find(&props).Error; err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(props))
	for i := range props {
		p := &props[i]
		var leadCount int64
		if err := db.Model(&models.Lead{}).Where("property_id = ?", p.ID).Count(&leadCount).Error; err != nil {
			writeError(c, err)
			return
		}
		var firstImage string
		if len(p.Images) > 0 {
			firstImage = p.Images[0].URL
		}
		out = append(out, gin.H{
			"id":          p.ID,
			"title":       p.Title,
			"price":       p.Price,
			"location":    p.Location,
			"status":      p.Status,
			"created_at":  p.CreatedAt,
			"leads_count": leadCount,
			"image":       firstImage,
		})
	}
	c.JSON(http.StatusOK, out)
}

// loadOwnedProperty fetches a property and enforces the ownership capability
// check: only the owner (or an administrator) may mutate or delete it.
func loadOwnedProperty(c *gin.Context) (*models.Property, error) {
	user, ok := getUserFromContext(c)
	if !ok {
		return nil, &AuthorizationError{Reason: "no valid identity"}
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return nil, validationErr("id", "must be numeric")
	}
	var p models.Property
	if err := db.Preload("Images").First(&p, id).Error; err != nil {
		return nil, &NotFoundError{Entity: "property"}
	}
	if p.OwnerID != user.ID && !isAdmin(c) {
		return nil, &AuthorizationError{Reason: "not the owner of this property"}
	}
	return &p, nil
}

// updatePropertyHandler replaces the mutable fields of a listing. Owner only.
func updatePropertyHandler(c *gin.Context) {
	p, err := loadOwnedProperty(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var req struct {
		Title       string `json:"title" binding:"required"`
		Price       string `json:"price"`
		Location    string `json:"location"`
		Colony      string `json:"colony"`
		Type        string `json:"type"`
		Area        string `json:"area"`
		Beds        *int   `json:"beds"`
		Baths       *int   `json:"baths"`
		Status      string `json:"status"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Same coercion rule as creation: missing counts become 0.
	beds, baths := 0, 0
	if req.Beds != nil {
		beds = *req.Beds
	}
	if req.Baths != nil {
		baths = *req.Baths
	}
	if beds < 0 {
		writeError(c, validationErr("beds", "must be a non-negative integer"))
		return
	}
	if baths < 0 {
		writeError(c, validationErr("baths", "must be a non-negative integer"))
		return
	}
	updates := map[string]interface{}{
		"title":       req.Title,
		"price":       req.Price,
		"location":    req.Location,
		"colony":      req.Colony,
		"type":        req.Type,
		"area":        req.Area,
		"beds":        beds,
		"baths":       baths,
		"status":      req.Status,
		"description": req.Description,
	}
	if updates["type"] == "" {
		updates["type"] = "House"
	}
	if updates["status"] == "" {
		updates["status"] = "Available"
	}
	if err := db.Model(p).Updates(updates).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID})
}

// deletePropertyHandler removes a listing with its images and leads in one
// transaction. Owner only. Stored files are removed best-effort afterwards.
func deletePropertyHandler(c *gin.Context) {
	p, err := loadOwnedProperty(c)
	if err != nil {
		writeError(c, err)
		return
	}
	storePaths := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		storePaths = append(storePaths, img.StorePath)
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", p.ID).Delete(&models.Lead{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", p.ID).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, p.ID).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}
	store := fileStore()
	for _, sp := range storePaths {
		store.Remove(sp)
	}
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}
