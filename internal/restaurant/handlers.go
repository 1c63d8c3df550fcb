package restaurant

import (
	"errors"
	"fmt"
	"net/http"

	"menuapp/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /restaurants/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	var restaurantID int64
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	res, err := h.service.GetRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// --------------------------------------------------
// PUT /admin/settings
// --------------------------------------------------
func (h *Handler) SaveSettings(c *gin.Context) {
	var req struct {
		Name                  string           `json:"name"`
		UniversalParcelCharge *decimal.Decimal `json:"universal_parcel_charge"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	settings := Settings{Name: req.Name}
	if req.UniversalParcelCharge != nil {
		settings.UniversalParcelCharge = *req.UniversalParcelCharge
	}

	res, err := h.service.SaveSettings(c.Request.Context(), c.GetInt64("restaurantID"), settings)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// --------------------------------------------------
// POST /admin/settings/logo
// --------------------------------------------------
func (h *Handler) UploadLogo(c *gin.Context) {
	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo is required"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadLogo(
		c.Request.Context(),
		c.GetInt64("restaurantID"),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidSettings),
		errors.Is(err, ErrLogoExtensionMissing),
		errors.Is(err, ErrLogoTypeNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStorageNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
