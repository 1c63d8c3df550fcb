package middleware

import (
	"context"
	"errors"
	"net/http"

	"menuapp/internal/auth"

	"github.com/gin-gonic/gin"
)

func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role missing"})
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// RestaurantResolver maps a signed-in user to the restaurant they administer.
type RestaurantResolver interface {
	RestaurantIDForUser(ctx context.Context, userID string) (int64, error)
}

// RestaurantScope sets "restaurantID" for admin handlers.
func RestaurantScope(resolver RestaurantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.RestaurantIDForUser(c.Request.Context(), c.GetString("userID"))
		if errors.Is(err, auth.ErrNoRestaurant) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "resolve restaurant"})
			return
		}

		c.Set("restaurantID", id)
		c.Next()
	}
}
