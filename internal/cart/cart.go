package cart

import (
	"sync"

	"menuapp/internal/menu"

	"github.com/shopspring/decimal"
)

// Line is one menu item in the cart with its dine-in and takeaway counts.
type Line struct {
	Item                menu.MenuItem `json:"item"`
	DineInQuantity      int           `json:"dine_in_quantity"`
	TakeawayQuantity    int           `json:"takeaway_quantity"`
	SpecialInstructions string        `json:"special_instructions"`
}

func (l Line) TotalQuantity() int {
	return l.DineInQuantity + l.TakeawayQuantity
}

// Snapshot is the derived, read-only view of a cart.
type Snapshot struct {
	Lines          []Line          `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ParcelCharges  decimal.Decimal `json:"parcel_charges"`
	Total          decimal.Decimal `json:"total"`
	TotalItemCount int             `json:"total_item_count"`
}

// Cart aggregates line items and keeps a priced snapshot in sync with them.
// It is safe for concurrent use.
type Cart struct {
	mu        sync.Mutex
	lines     []Line
	universal decimal.Decimal
	snapshot  Snapshot
}

// New returns an empty cart using rate as the restaurant-wide parcel charge.
func New(rate decimal.Decimal) *Cart {
	c := &Cart{universal: rate}
	c.recompute()
	return c
}

func (c *Cart) SetUniversalParcelCharge(rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.universal = rate
	c.recompute()
}

// AddItem bumps the dine-in count of an existing line or appends a new one.
func (c *Cart) AddItem(item menu.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(item.ID); i >= 0 {
		c.lines[i].DineInQuantity++
	} else {
		c.lines = append(c.lines, Line{Item: item, DineInQuantity: 1})
	}
	c.recompute()
}

// SetDineInQuantity is a no-op for unknown items and negative quantities.
func (c *Cart) SetDineInQuantity(itemID int64, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(itemID)
	if i < 0 || qty < 0 {
		return
	}
	c.lines[i].DineInQuantity = qty
	c.recompute()
}

// SetTakeawayQuantity is a no-op for unknown items and negative quantities.
func (c *Cart) SetTakeawayQuantity(itemID int64, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(itemID)
	if i < 0 || qty < 0 {
		return
	}
	c.lines[i].TakeawayQuantity = qty
	c.recompute()
}

// SetQuantities sets both counts of a line and recomputes once, so moving
// units between dine-in and takeaway never drops the line midway. Nil or
// negative values leave that count unchanged.
func (c *Cart) SetQuantities(itemID int64, dineIn, takeaway *int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(itemID)
	if i < 0 {
		return
	}
	if dineIn != nil && *dineIn >= 0 {
		c.lines[i].DineInQuantity = *dineIn
	}
	if takeaway != nil && *takeaway >= 0 {
		c.lines[i].TakeawayQuantity = *takeaway
	}
	c.recompute()
}

func (c *Cart) SetInstructions(itemID int64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(itemID)
	if i < 0 {
		return
	}
	c.lines[i].SpecialInstructions = text
	c.recompute()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.recompute()
}

// Line returns the current line for itemID.
func (c *Cart) Line(itemID int64) (Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(itemID)
	if i < 0 {
		return Line{}, false
	}
	return c.lines[i], true
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot
}

// Restore replaces the cart contents with previously snapshotted lines.
// Duplicate item ids keep the first occurrence.
func (c *Cart) Restore(lines []Line) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	for _, l := range lines {
		if l.DineInQuantity < 0 || l.TakeawayQuantity < 0 || c.index(l.Item.ID) >= 0 {
			continue
		}
		c.lines = append(c.lines, l)
	}
	c.recompute()
}

func (c *Cart) index(itemID int64) int {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			return i
		}
	}
	return -1
}

// recompute must be called with mu held.
func (c *Cart) recompute() {
	kept := make([]Line, 0, len(c.lines))
	subtotal := decimal.Zero
	parcel := decimal.Zero
	count := 0

	for _, l := range c.lines {
		qty := l.TotalQuantity()
		if qty == 0 {
			continue
		}
		kept = append(kept, l)

		subtotal = subtotal.Add(l.Item.Price.Mul(decimal.NewFromInt(int64(qty))))
		if l.TakeawayQuantity > 0 {
			rate := l.Item.EffectiveParcelCharge(c.universal)
			parcel = parcel.Add(rate.Mul(decimal.NewFromInt(int64(l.TakeawayQuantity))))
		}
		count += qty
	}
	c.lines = kept

	// the snapshot owns its own slice
	out := make([]Line, len(kept))
	copy(out, kept)

	c.snapshot = Snapshot{
		Lines:          out,
		Subtotal:       subtotal,
		ParcelCharges:  parcel,
		Total:          subtotal.Add(parcel),
		TotalItemCount: count,
	}
}
