package state

// CartItem is one cart line as the backend serializes it. CartID is the
// server-assigned entry id, distinct from the product id. Product fields are
// denormalized snapshots taken at sync time.
type CartItem struct {
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

// CartState is the cart collection plus its server-computed aggregates. Total
// is never derived locally; it mirrors what the total endpoint returned.
// ItemCount is the sum of quantities across the reconciled entries.
type CartState struct {
	Collection[CartItem]
	Total     float64
	ItemCount int
}

// NewCartState returns the empty initial cart state.
func NewCartState() CartState {
	return CartState{Collection: Collection[CartItem]{Items: []CartItem{}, Status: StatusIdle}}
}

// Loading marks a cart sync in flight.
func (s CartState) Loading() CartState {
	s.Collection = s.Collection.WithLoading()
	return s
}

// Failed records a cart operation failure, preserving items and aggregates.
func (s CartState) Failed(msg string) CartState {
	s.Collection = s.Collection.WithError(msg)
	return s
}

// Reconcile replaces the cart with the server response. The total comes from
// the dedicated total endpoint; the item count is recomputed from the
// returned quantities.
func (s CartState) Reconcile(items []CartItem, total float64) CartState {
	s.Collection = s.Collection.Reconciled(items)
	s.Total = total
	s.ItemCount = 0
	for _, it := range s.Items {
		s.ItemCount += it.Quantity
	}
	return s
}

// Clear resets the cart to its initial empty state.
func (s CartState) Clear() CartState {
	return NewCartState()
}

// MergeItem applies the optimistic add transition: if an entry with the same
// product id exists its quantity grows by the incoming quantity, otherwise
// the item is appended. The result is always superseded by the next
// Reconcile; it exists so the invariant (one entry per product) is testable
// in isolation.
func (s CartState) MergeItem(item CartItem) CartState {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)

	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	s.Collection.Items = items
	return s
}

// SetQuantity replaces the quantity on the entry with the given cart id.
// Unknown ids leave the state unchanged.
func (s CartState) SetQuantity(cartID string, quantity int) CartState {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)

	for i := range items {
		if items[i].CartID == cartID {
			items[i].Quantity = quantity
			break
		}
	}

	s.Collection.Items = items
	return s
}

// RemoveByID filters out the entry with the given cart id.
func (s CartState) RemoveByID(cartID string) CartState {
	items := make([]CartItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.CartID != cartID {
			items = append(items, it)
		}
	}
	s.Collection.Items = items
	return s
}
