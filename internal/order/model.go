package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move an order from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Item is a cart line frozen at order time.
type Item struct {
	MenuItemID          int64           `json:"menu_item_id"`
	MenuItemName        string          `json:"menu_item_name"`
	MenuItemPrice       decimal.Decimal `json:"menu_item_price"`
	DineInQuantity      int             `json:"dine_in_quantity"`
	TakeawayQuantity    int             `json:"takeaway_quantity"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

type Order struct {
	ID               int64           `json:"id"`
	CustomerName     string          `json:"customer_name"`
	Total            decimal.Decimal `json:"total"`
	Items            []Item          `json:"items"`
	Status           Status          `json:"status"`
	DailyOrderNumber int             `json:"daily_order_number"`
	RestaurantID     int64           `json:"restaurant_id"`
	CreatedAt        time.Time       `json:"created_at"`
}
