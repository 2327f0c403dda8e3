package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/server/http/dto"
)

// ProfileHandler manages applicant profile endpoints.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/user/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	profile, err := h.facade.Profile(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNoContent)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		RealName:       profile.RealName,
		Education:      profile.Education,
		GraduationYear: profile.GraduationYear,
		TargetRegion:   profile.TargetRegion,
		UpdatedAt:      profile.UpdatedAt,
	})
}

// Save handles PUT /api/user/profile.
func (h *ProfileHandler) Save(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.SaveProfile(c.Request.Context(), &model.Profile{
		UserID:         userID,
		RealName:       req.RealName,
		Education:      req.Education,
		GraduationYear: req.GraduationYear,
		TargetRegion:   req.TargetRegion,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidProfile):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
