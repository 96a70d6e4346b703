package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantityPerItem caps the quantity of any single line item.
const MaxQuantityPerItem = 99

// LineItem is one comic in the cart at the price it had when first added.
type LineItem struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	CoverImage string          `json:"coverImage"`
	Quantity   int             `json:"quantity"`
}

// LineTotal is price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart holds at most one line item per comic id, in insertion order.
type Cart struct {
	Items []LineItem `json:"items"`
}

// ClampQuantity limits q to [1, MaxQuantityPerItem].
func ClampQuantity(q int) int {
	switch {
	case q > MaxQuantityPerItem:
		return MaxQuantityPerItem
	case q < 1:
		return 1
	}
	return q
}

// AddQuantity returns existing+q clamped to [1, MaxQuantityPerItem] without
// overflowing int.
func AddQuantity(existing, q int) int {
	existing, q = ClampQuantity(existing), ClampQuantity(q)
	return ClampQuantity(existing + q)
}

// FindItemIndex returns the index of the line item for id, or -1.
func (c *Cart) FindItemIndex(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the cart has a line item for id.
func (c *Cart) Contains(id string) bool {
	return c.FindItemIndex(id) >= 0
}

// Add puts quantity copies of comic in the cart. An existing line item keeps
// its snapshot and accumulates; a new one snapshots the comic's current
// title, price and cover. quantity must be positive. The result is clamped
// to MaxQuantityPerItem.
func (c *Cart) Add(comic Comic, quantity int) LineItem {
	if idx := c.FindItemIndex(comic.ID); idx >= 0 {
		c.Items[idx].Quantity = AddQuantity(c.Items[idx].Quantity, quantity)
		return c.Items[idx]
	}
	item := LineItem{
		ID:         comic.ID,
		Title:      comic.Title,
		Price:      comic.Price,
		CoverImage: comic.CoverImage,
		Quantity:   ClampQuantity(quantity),
	}
	c.Items = append(c.Items, item)
	return item
}

// SetQuantity overwrites the quantity of the line item for id, removing it
// when quantity <= 0. It reports false if there is no such line item.
func (c *Cart) SetQuantity(id string, quantity int) bool {
	idx := c.FindItemIndex(id)
	if idx < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return true
	}
	c.Items[idx].Quantity = ClampQuantity(quantity)
	return true
}

// Remove drops the line item for id. It reports whether one was present.
func (c *Cart) Remove(id string) bool {
	idx := c.FindItemIndex(id)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return true
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal is the sum of the line totals at snapshot prices.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Summary prices the cart. Tax and total are rounded to cents.
func (c *Cart) Summary(taxRate decimal.Decimal) CartSummary {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	subtotal := c.Subtotal()
	tax := subtotal.Mul(taxRate).Round(2)
	return CartSummary{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  subtotal.Round(2),
		TaxRate:   taxRate,
		Tax:       tax,
		Total:     subtotal.Round(2).Add(tax),
	}
}

// CartSummary is the priced view behind the cart page.
type CartSummary struct {
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt confirms a demonstration checkout. Nothing is charged.
type Receipt struct {
	Reference string    `json:"reference"`
	PlacedAt  time.Time `json:"placed_at"`
	Demo      bool      `json:"demo"`
	CartSummary
}
