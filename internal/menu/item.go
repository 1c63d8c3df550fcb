package menu

import "github.com/shopspring/decimal"

// MenuItem is a single dish as stored in menu_items.
type MenuItem struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Price             decimal.Decimal  `json:"price"`
	Description       *string          `json:"description,omitempty"`
	CategoryID        int64            `json:"category"`
	InStock           bool             `json:"in_stock"`
	TakeawayAvailable bool             `json:"takeaway_available"`
	ParcelCharge      *decimal.Decimal `json:"parcel_charge,omitempty"`
	RestaurantID      int64            `json:"restaurant_id"`
}

// EffectiveParcelCharge is the per-unit takeaway surcharge: the item's own
// charge when set, otherwise the restaurant-wide default.
func (m MenuItem) EffectiveParcelCharge(universal decimal.Decimal) decimal.Decimal {
	if m.ParcelCharge != nil {
		return *m.ParcelCharge
	}
	return universal
}
