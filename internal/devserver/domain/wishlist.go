package domain

import "time"

// WishlistEntry is one saved product. WishlistID is the server-assigned entry
// id; at most one entry exists per product.
type WishlistEntry struct {
	WishlistID   string    `json:"wishlistId"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	ProductPhoto string    `json:"productPhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Wishlist is a user's wishlist aggregate.
type Wishlist struct {
	UserID    string          `json:"userId"`
	Items     []WishlistEntry `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Contains reports whether a product is already saved.
func (w *Wishlist) Contains(productID string) bool {
	for _, it := range w.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// Add appends an entry. It reports false without modifying the wishlist when
// the product is already saved.
func (w *Wishlist) Add(entry WishlistEntry) bool {
	if w.Contains(entry.ProductID) {
		return false
	}
	w.Items = append(w.Items, entry)
	return true
}

// Remove deletes the entry with the given wishlist id. It reports whether the
// entry was found.
func (w *Wishlist) Remove(wishlistID string) bool {
	for i := range w.Items {
		if w.Items[i].WishlistID == wishlistID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return true
		}
	}
	return false
}
