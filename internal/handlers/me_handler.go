package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/middleware"
	"github.com/NailSitePro/salon-platform/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Phone    *string `json:"phone_number"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateSalonLinkRequest struct {
	SalonID *uint `json:"salon_id" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Salon").First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load your profile.")
		return
	}

	payload := userPayload(&user)
	if user.Salon != nil {
		payload["salon"] = gin.H{
			"id":         user.Salon.ID,
			"name":       user.Salon.Name,
			"sample_url": user.Salon.SampleURL,
			"claimed":    user.Salon.Claimed,
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": payload})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load your profile.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Username != nil && *req.Username != "" {
		user.Username = *req.Username
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save your profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(&user)})
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load your profile.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		httperr.BadRequest(c, "wrong_password", "Current password is incorrect.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not update the password.")
		return
	}

	if err := h.db.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "Could not update the password.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}

// UpdateSalonLink sets the profile-side salon pointer. It never touches
// Salon.OwnerID; only the claim workflow assigns ownership.
func (h *MeHandler) UpdateSalonLink(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateSalonLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, *req.SalonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("salon_id", salon.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not update the salon link.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"salon_id": salon.ID})
}
