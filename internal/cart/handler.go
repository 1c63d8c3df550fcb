package cart

import (
	"errors"
	"fmt"
	"net/http"

	"menuapp/internal/menu"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /restaurants/:id/carts
// --------------------------------------------------
func (h *Handler) Open(c *gin.Context) {
	var restaurantID int64
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	v, err := h.service.Open(c.Request.Context(), restaurantID)
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cart_id": v.ID, "cart": v})
}

// --------------------------------------------------
// GET /carts/:cartID
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	v, err := h.service.Get(c.Request.Context(), c.Param("cartID"))
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// POST /carts/:cartID/items
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	var req struct {
		MenuItemID int64 `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu_item_id is required"})
		return
	}

	v, err := h.service.AddItem(c.Request.Context(), c.Param("cartID"), req.MenuItemID)
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// PATCH /carts/:cartID/items/:itemID
// --------------------------------------------------
func (h *Handler) UpdateLine(c *gin.Context) {
	var itemID int64
	if _, err := fmt.Sscanf(c.Param("itemID"), "%d", &itemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var patch LinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v, err := h.service.UpdateLine(c.Request.Context(), c.Param("cartID"), itemID, patch)
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// DELETE /carts/:cartID
// --------------------------------------------------
func (h *Handler) Clear(c *gin.Context) {
	v, err := h.service.Clear(c.Request.Context(), c.Param("cartID"))
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// WriteError maps cart errors to HTTP responses.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCartNotFound),
		errors.Is(err, ErrRestaurantNotFound),
		errors.Is(err, menu.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrItemNotInRestaurant):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrItemUnavailable),
		errors.Is(err, ErrTakeawayUnavailable),
		errors.Is(err, ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
