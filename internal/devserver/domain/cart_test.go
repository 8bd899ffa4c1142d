package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Cart.Total / Cart.ItemCount
// ============================================================================

func TestCartTotal_MultipleItems(t *testing.T) {
	c := &Cart{
		Items: []CartEntry{
			{ProductPrice: 10.00, Quantity: 2},
			{ProductPrice: 5.50, Quantity: 3},
		},
	}
	// 20.00 + 16.50 = 36.50
	assert.Equal(t, 36.50, c.Total())
}

func TestCartTotal_EmptyCart(t *testing.T) {
	c := &Cart{Items: []CartEntry{}}
	assert.Zero(t, c.Total())
}

func TestCartItemCount(t *testing.T) {
	c := &Cart{
		Items: []CartEntry{
			{Quantity: 2},
			{Quantity: 3},
		},
	}
	assert.Equal(t, 5, c.ItemCount())
}

// ============================================================================
// Cart.Merge
// ============================================================================

func TestCartMerge_NewProductAppends(t *testing.T) {
	c := &Cart{Items: []CartEntry{{CartID: "c1", ProductID: "p1", Quantity: 1}}}

	c.Merge(CartEntry{CartID: "c2", ProductID: "p2", Quantity: 2})

	assert.Len(t, c.Items, 2)
}

func TestCartMerge_DuplicateProductIncrementsQuantity(t *testing.T) {
	c := &Cart{Items: []CartEntry{{CartID: "c1", ProductID: "p1", Quantity: 2}}}

	merged := c.Merge(CartEntry{CartID: "c2", ProductID: "p1", Quantity: 3})

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	// The original entry id survives the merge.
	assert.Equal(t, "c1", merged.CartID)
}

// ============================================================================
// Cart.SetQuantity / Cart.Remove
// ============================================================================

func TestCartSetQuantity(t *testing.T) {
	c := &Cart{Items: []CartEntry{{CartID: "c1", Quantity: 2}}}

	assert.True(t, c.SetQuantity("c1", 7))
	assert.Equal(t, 7, c.Items[0].Quantity)

	assert.False(t, c.SetQuantity("missing", 1))
}

func TestCartRemove(t *testing.T) {
	c := &Cart{Items: []CartEntry{{CartID: "c1"}, {CartID: "c2"}}}

	assert.True(t, c.Remove("c1"))
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "c2", c.Items[0].CartID)

	assert.False(t, c.Remove("missing"))
}

// ============================================================================
// Wishlist
// ============================================================================

func TestWishlistAdd_RejectsDuplicateProduct(t *testing.T) {
	w := &Wishlist{}

	assert.True(t, w.Add(WishlistEntry{WishlistID: "w1", ProductID: "p1"}))
	assert.False(t, w.Add(WishlistEntry{WishlistID: "w2", ProductID: "p1"}))
	assert.Len(t, w.Items, 1)
}

func TestWishlistRemove(t *testing.T) {
	w := &Wishlist{Items: []WishlistEntry{{WishlistID: "w1", ProductID: "p1"}}}

	assert.True(t, w.Remove("w1"))
	assert.Empty(t, w.Items)
	assert.False(t, w.Remove("w1"))
}

func TestWishlistContains(t *testing.T) {
	w := &Wishlist{Items: []WishlistEntry{{WishlistID: "w1", ProductID: "p1"}}}

	assert.True(t, w.Contains("p1"))
	assert.False(t, w.Contains("p2"))
}
