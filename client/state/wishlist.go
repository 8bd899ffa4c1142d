package state

import "time"

// WishlistItem is one saved product as the backend serializes it. WishlistID
// is the server-assigned entry id. The server enforces at most one entry per
// product; the client never merges wishlist entries locally.
type WishlistItem struct {
	WishlistID   string    `json:"wishlistId"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	ProductPhoto string    `json:"productPhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// WishlistState is the wishlist collection. It carries no monetary total.
type WishlistState struct {
	Collection[WishlistItem]
}

// NewWishlistState returns the empty initial wishlist state.
func NewWishlistState() WishlistState {
	return WishlistState{Collection: Collection[WishlistItem]{Items: []WishlistItem{}, Status: StatusIdle}}
}

// Loading marks a wishlist sync in flight.
func (s WishlistState) Loading() WishlistState {
	s.Collection = s.Collection.WithLoading()
	return s
}

// Failed records a wishlist operation failure, preserving items.
func (s WishlistState) Failed(msg string) WishlistState {
	s.Collection = s.Collection.WithError(msg)
	return s
}

// Reconcile replaces the wishlist with the server response.
func (s WishlistState) Reconcile(items []WishlistItem) WishlistState {
	s.Collection = s.Collection.Reconciled(items)
	return s
}

// Clear resets the wishlist to its initial empty state.
func (s WishlistState) Clear() WishlistState {
	return NewWishlistState()
}

// RemoveByID filters out the entry with the given wishlist id.
func (s WishlistState) RemoveByID(wishlistID string) WishlistState {
	items := make([]WishlistItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.WishlistID != wishlistID {
			items = append(items, it)
		}
	}
	s.Collection.Items = items
	return s
}

// Contains reports whether a product is already saved.
func (s WishlistState) Contains(productID string) bool {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
