// Package repository defines the persistence contracts for the devserver's
// aggregates.
package repository

import (
	"context"

	"github.com/jyothimogili456/storesync/internal/devserver/domain"
)

// CartRepository persists cart aggregates keyed by user id.
type CartRepository interface {
	// Get retrieves a user's cart. Returns an error wrapping ErrNotFound when
	// the user has no cart.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists the cart, refreshing its TTL.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the user's cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, userID string) error
}

// WishlistRepository persists wishlist aggregates keyed by user id.
type WishlistRepository interface {
	// Get retrieves a user's wishlist. Returns an error wrapping ErrNotFound
	// when the user has no wishlist.
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)

	// Save persists the wishlist. Wishlists do not expire.
	Save(ctx context.Context, wishlist *domain.Wishlist) error

	// Delete removes the user's wishlist. Deleting a missing wishlist is not
	// an error.
	Delete(ctx context.Context, userID string) error
}
