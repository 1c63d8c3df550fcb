package restaurant

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name"`
	LogoURL               *string         `json:"logo_url,omitempty"`
	DisplayPreference     *string         `json:"display_preference,omitempty"`
	UniversalParcelCharge decimal.Decimal `json:"universal_parcel_charge"`
	CreatedAt             time.Time       `json:"created_at"`
}

// Settings is what an admin may change from the management screen.
type Settings struct {
	Name                  string          `json:"name"`
	UniversalParcelCharge decimal.Decimal `json:"universal_parcel_charge"`
}
