package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/server/http/dto"
)

// FavoriteHandler manages saved-posting endpoints.
type FavoriteHandler struct {
	facade FavoriteFacade
}

// NewFavoriteHandler constructs FavoriteHandler.
func NewFavoriteHandler(facade FavoriteFacade) *FavoriteHandler {
	return &FavoriteHandler{facade: facade}
}

// Add handles POST /api/user/favorites.
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.AddFavorite(c.Request.Context(), userID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusCreated)
}

// Remove handles DELETE /api/user/favorites/:jobID.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID := CurrentUserID(c)
	jobID, err := strconv.ParseInt(c.Param("jobID"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveFavorite(c.Request.Context(), userID, jobID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// List handles GET /api/user/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	jobs, err := h.facade.Favorites(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(jobs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		response = append(response, toJobResponse(j))
	}
	c.JSON(http.StatusOK, response)
}
