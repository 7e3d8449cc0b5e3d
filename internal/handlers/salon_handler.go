package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/cache"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/httpresp"
	"github.com/NailSitePro/salon-platform/internal/middleware"
	"github.com/NailSitePro/salon-platform/internal/models"
	ucSalon "github.com/NailSitePro/salon-platform/internal/usecase/salon"
)

// ======================================================
// HANDLER
// ======================================================

type SalonHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	cache *cache.Cache

	createUC  *ucSalon.CreateSalon
	claimUC   *ucSalon.ClaimSalon
	deleteUC  *ucSalon.DeleteSalon
	contactUC *ucSalon.ContactLeads
	lookupUC  *ucSalon.LookupSalon
}

func NewSalonHandler(
	db *gorm.DB,
	repo domain.Repository,
	cache *cache.Cache,
	createUC *ucSalon.CreateSalon,
	claimUC *ucSalon.ClaimSalon,
	deleteUC *ucSalon.DeleteSalon,
	contactUC *ucSalon.ContactLeads,
	lookupUC *ucSalon.LookupSalon,
) *SalonHandler {
	return &SalonHandler{
		db:        db,
		repo:      repo,
		cache:     cache,
		createUC:  createUC,
		claimUC:   claimUC,
		deleteUC:  deleteUC,
		contactUC: contactUC,
		lookupUC:  lookupUC,
	}
}

// actorFrom builds the explicit principal the use cases are executed as.
// Anonymous requests produce the zero actor.
func actorFrom(c *gin.Context) ucSalon.Actor {
	var a ucSalon.Actor
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			a.ID = id
		}
	}
	if v, ok := c.Get(middleware.ContextUserRole); ok {
		if r, ok := v.(string); ok {
			a.Role = r
		}
	}
	return a
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSalonRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Address  string `json:"address"`
	Phone    string `json:"phone_number"`
	Email    string `json:"email"`

	Description  string         `json:"description"`
	Services     datatypes.JSON `json:"services"`
	OpeningHours string         `json:"opening_hours"`

	TemplateID *uint  `json:"template_id"`
	SampleURL  string `json:"sample_url"`
}

type UpdateSalonRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone_number"`
	Email    *string `json:"email"`

	Description  *string         `json:"description"`
	Services     *datatypes.JSON `json:"services"`
	OpeningHours *string         `json:"opening_hours"`

	LogoImageURL       *string `json:"logo_image_url"`
	CoverImageURL      *string `json:"cover_image_url"`
	AboutImageURL      *string `json:"about_image_url"`
	FooterLogoImageURL *string `json:"footer_logo_image_url"`

	HeroSubtitle    *string `json:"hero_subtitle"`
	ServicesTagline *string `json:"services_tagline"`
	GalleryTagline  *string `json:"gallery_tagline"`
	FooterAbout     *string `json:"footer_about"`

	BookingURL  *string `json:"booking_url"`
	GalleryURL  *string `json:"gallery_url"`
	ServicesURL *string `json:"services_url"`
	MapEmbedURL *string `json:"map_embed_url"`

	GalleryImages *datatypes.JSON `json:"gallery_images"`
	Testimonials  *datatypes.JSON `json:"testimonials"`
	SocialLinks   *datatypes.JSON `json:"social_links"`

	TemplateID *uint `json:"template_id"`
}

type ContactLeadsRequest struct {
	LeadIDs []uint `json:"leadIds" binding:"required"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	params := domain.ListParams{
		Search: c.Query("search"),
	}

	if claimedStr := c.Query("claimed"); claimedStr != "" {
		switch strings.ToLower(claimedStr) {
		case "true", "1", "yes":
			v := true
			params.Claimed = &v
		case "false", "0", "no":
			v := false
			params.Claimed = &v
		}
	}

	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	salons, total, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not list salons.")
		return
	}

	httpresp.List(c, salons, total)
}

func (h *SalonHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Salon id must be an integer.")
		return
	}

	s, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_get_salon", "Could not load the salon.")
		}
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// CREATE (admin)
// ======================================================

func (h *SalonHandler) Create(c *gin.Context) {
	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	s, err := h.createUC.Execute(c.Request.Context(), actorFrom(c), ucSalon.CreateSalonInput{
		Name:         req.Name,
		Location:     req.Location,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		Description:  req.Description,
		Services:     req.Services,
		OpeningHours: req.OpeningHours,
		TemplateID:   req.TemplateID,
		SampleURL:    req.SampleURL,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_create_salon", "Could not create the salon.")
		}
		return
	}

	httpresp.Created(c, s)
}

// ======================================================
// UPDATE (owner or admin)
// ======================================================

func (h *SalonHandler) Update(c *gin.Context) {
	actor := actorFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Salon id must be an integer.")
		return
	}

	s, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_get_salon", "Could not load the salon.")
		}
		return
	}

	ownedByActor := s.OwnerID != nil && *s.OwnerID == actor.ID
	if !actor.Admin() && !ownedByActor {
		httperr.Forbidden(c, "forbidden", "Only the owner or an admin can update this salon.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	applySalonUpdate(s, &req)

	if err := h.repo.Update(c.Request.Context(), s); err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not save the salon.")
		return
	}

	h.cache.InvalidateSlug(c.Request.Context(), s.SampleURL)

	httpresp.OK(c, s)
}

func applySalonUpdate(s *models.Salon, req *UpdateSalonRequest) {
	if req.Name != nil && *req.Name != "" {
		s.Name = *req.Name
	}
	if req.Location != nil {
		s.Location = *req.Location
	}
	if req.Address != nil {
		s.Address = *req.Address
	}
	if req.Phone != nil {
		s.Phone = *req.Phone
	}
	if req.Email != nil {
		s.Email = *req.Email
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.Services != nil {
		s.Services = *req.Services
	}
	if req.OpeningHours != nil {
		s.OpeningHours = *req.OpeningHours
	}
	if req.LogoImageURL != nil {
		s.LogoImageURL = *req.LogoImageURL
	}
	if req.CoverImageURL != nil {
		s.CoverImageURL = *req.CoverImageURL
	}
	if req.AboutImageURL != nil {
		s.AboutImageURL = *req.AboutImageURL
	}
	if req.FooterLogoImageURL != nil {
		s.FooterLogoImageURL = *req.FooterLogoImageURL
	}
	if req.HeroSubtitle != nil {
		s.HeroSubtitle = *req.HeroSubtitle
	}
	if req.ServicesTagline != nil {
		s.ServicesTagline = *req.ServicesTagline
	}
	if req.GalleryTagline != nil {
		s.GalleryTagline = *req.GalleryTagline
	}
	if req.FooterAbout != nil {
		s.FooterAbout = *req.FooterAbout
	}
	if req.BookingURL != nil {
		s.BookingURL = *req.BookingURL
	}
	if req.GalleryURL != nil {
		s.GalleryURL = *req.GalleryURL
	}
	if req.ServicesURL != nil {
		s.ServicesURL = *req.ServicesURL
	}
	if req.MapEmbedURL != nil {
		s.MapEmbedURL = *req.MapEmbedURL
	}
	if req.GalleryImages != nil {
		s.GalleryImages = *req.GalleryImages
	}
	if req.Testimonials != nil {
		s.Testimonials = *req.Testimonials
	}
	if req.SocialLinks != nil {
		s.SocialLinks = *req.SocialLinks
	}
	if req.TemplateID != nil {
		s.TemplateID = req.TemplateID
	}
}

// ======================================================
// DELETE (owner or admin)
// ======================================================

func (h *SalonHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Salon id must be an integer.")
		return
	}

	slug, err := h.deleteUC.Execute(c.Request.Context(), actorFrom(c), uint(id))
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_delete_salon", "Could not delete the salon.")
		}
		return
	}

	h.cache.InvalidateSlug(c.Request.Context(), slug)

	c.Status(http.StatusNoContent)
}

// ======================================================
// CLAIM
// ======================================================

func (h *SalonHandler) Claim(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Salon id must be an integer.")
		return
	}

	s, err := h.claimUC.Execute(c.Request.Context(), actorFrom(c), uint(id))
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_claim_salon", "Could not claim the salon.")
		}
		return
	}

	h.cache.InvalidateSlug(c.Request.Context(), s.SampleURL)

	httpresp.OK(c, s)
}

// ======================================================
// SAMPLE LOOKUP (public)
// ======================================================

func (h *SalonHandler) SampleLookup(c *gin.Context) {
	sampleURL := c.Param("sample_url")

	s, err := h.lookupUC.Execute(c.Request.Context(), sampleURL)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_get_salon", "Could not load the salon.")
		}
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// CONTACT LEADS (admin)
// ======================================================

func (h *SalonHandler) ContactLeads(c *gin.Context) {
	var req ContactLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_argument", "'leadIds' must be a non-empty list of integers.")
		return
	}

	updated, err := h.contactUC.Execute(c.Request.Context(), actorFrom(c), req.LeadIDs)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_contact_leads", "Could not update the leads.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully marked " + strconv.FormatInt(updated, 10) + " leads as contacted.",
		"updated": updated,
	})
}
