package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/httpresp"
	"github.com/NailSitePro/salon-platform/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type TemplateHandler struct {
	db *gorm.DB
}

func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{db: db}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *TemplateHandler) List(c *gin.Context) {
	var templates []models.Template
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&templates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_templates", "Could not list templates.")
		return
	}

	httpresp.List(c, templates, int64(len(templates)))
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Template id must be an integer.")
		return
	}

	var t models.Template
	if err := h.db.WithContext(c.Request.Context()).
		First(&t, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "not_found", "Template not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_template", "Could not load the template.")
		return
	}

	httpresp.OK(c, &t)
}

// ======================================================
// PREVIEW
// ======================================================

// Preview returns the template joined with a synthetic salon so the
// public site renderer can show it without a real business attached.
func (h *TemplateHandler) Preview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Template id must be an integer.")
		return
	}

	var t models.Template
	if err := h.db.WithContext(c.Request.Context()).
		First(&t, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "not_found", "Template not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_template", "Could not load the template.")
		return
	}

	httpresp.OK(c, gin.H{
		"template": t,
		"salon":    previewSalon(&t),
	})
}

func previewSalon(t *models.Template) *models.Salon {
	return &models.Salon{
		Name:         "Studio Belle Nails",
		Location:     "Portland, OR",
		Address:      "1200 SE Hawthorne Blvd, Portland, OR 97214",
		Phone:        "(503) 555-0147",
		Email:        "hello@studiobellenails.example",
		Description:  "A boutique nail studio offering manicures, pedicures and custom nail art in a relaxed atmosphere.",
		OpeningHours: "Mon-Sat 9am-7pm, Sun 10am-4pm",

		HeroSubtitle:    "Beautiful nails, every day",
		ServicesTagline: "Treatments tailored to you",
		GalleryTagline:  "Our latest work",
		FooterAbout:     "Family owned since 2015.",

		CoverImageURL: t.DefaultCoverImageURL,
		AboutImageURL: t.DefaultAboutImageURL,

		Services: datatypes.JSON([]byte(`[
			{"name": "Classic Manicure", "price": "$25", "duration": "30 min"},
			{"name": "Gel Pedicure", "price": "$45", "duration": "60 min"},
			{"name": "Custom Nail Art", "price": "$60", "duration": "90 min"}
		]`)),
		Testimonials: datatypes.JSON([]byte(`[
			{"author": "Maria G.", "text": "Best manicure in town, the attention to detail is amazing."},
			{"author": "Dana W.", "text": "I never go anywhere else. Friendly staff and gorgeous results."}
		]`)),

		TemplateID: &t.ID,
		Template:   t,
	}
}
