// Package domain defines the devserver's cart and wishlist aggregates. JSON
// tags follow the storefront wire contract (camelCase), so aggregates can be
// persisted and served without a mapping layer.
package domain

import "time"

// CartEntry is one line in a user's cart. CartID is the server-assigned entry
// id; product fields are denormalized from the catalog at add time.
type CartEntry struct {
	CartID       string  `json:"cartId"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	Quantity     int     `json:"quantity"`
	ProductPhoto string  `json:"productPhoto,omitempty"`
	StockCount   int     `json:"stockCount,omitempty"`
	ProductCode  string  `json:"productCode,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// Cart is a user's cart aggregate.
type Cart struct {
	UserID    string      `json:"userId"`
	Items     []CartEntry `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Total returns the sum of price*quantity across all entries.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.ProductPrice * float64(it.Quantity)
	}
	return total
}

// ItemCount returns the total quantity across all entries.
func (c *Cart) ItemCount() int {
	count := 0
	for _, it := range c.Items {
		count += it.Quantity
	}
	return count
}

// Merge adds an entry, folding it into an existing line when the product is
// already in the cart. It returns the entry that ended up in the cart.
func (c *Cart) Merge(entry CartEntry) CartEntry {
	for i := range c.Items {
		if c.Items[i].ProductID == entry.ProductID {
			c.Items[i].Quantity += entry.Quantity
			return c.Items[i]
		}
	}
	c.Items = append(c.Items, entry)
	return entry
}

// SetQuantity replaces the quantity on the entry with the given cart id. It
// reports whether the entry was found.
func (c *Cart) SetQuantity(cartID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].CartID == cartID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given cart id. It reports whether the
// entry was found.
func (c *Cart) Remove(cartID string) bool {
	for i := range c.Items {
		if c.Items[i].CartID == cartID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
