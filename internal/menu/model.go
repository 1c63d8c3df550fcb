package menu

import (
	"menuapp/internal/restaurant"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	RestaurantID int64  `json:"restaurant_id"`
}

// Menu is the customer-facing view of one restaurant.
type Menu struct {
	Restaurant *restaurant.Restaurant `json:"restaurant"`
	Categories []Category             `json:"categories"`
	Items      map[int64][]MenuItem   `json:"items"`
}

// ItemInput carries the editable fields of a menu item.
type ItemInput struct {
	Name              string           `json:"name"`
	Price             decimal.Decimal  `json:"price"`
	Description       *string          `json:"description"`
	CategoryID        int64            `json:"category"`
	InStock           *bool            `json:"in_stock"`
	TakeawayAvailable *bool            `json:"takeaway_available"`
	ParcelCharge      *decimal.Decimal `json:"parcel_charge"`
}
