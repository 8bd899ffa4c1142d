// Package sync orchestrates the client's cart and wishlist against the
// remote collection service: every operation validates the session, performs
// its HTTP call, and reconciles the local store from the server's response.
// Mutations are followed by a full reload rather than trusting the optimistic
// local transition, so server-side pricing stays authoritative.
package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jyothimogili456/storesync/client/session"
	"github.com/jyothimogili456/storesync/client/state"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
)

// CartService is the remote cart contract the controller drives.
// *remote.CartAPI satisfies it.
type CartService interface {
	Items(ctx context.Context, token, userID string) ([]state.CartItem, error)
	Total(ctx context.Context, token, userID string) (float64, error)
	Add(ctx context.Context, token, userID, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, token, cartID, userID string, quantity int) error
	Remove(ctx context.Context, token, cartID, userID string) error
	Clear(ctx context.Context, token, userID string) error
}

const (
	cartCollection = "cart"

	msgSessionExpired = "your session has expired, please log in again"
	msgCartLoad       = "failed to load cart"
	msgCartAdd        = "failed to add item to cart"
	msgCartUpdate     = "failed to update cart item"
	msgCartRemove     = "failed to remove cart item"
	msgCartClear      = "failed to clear cart"
)

// CartController keeps the local cart store reconciled with the remote cart.
type CartController struct {
	store     *state.Store[state.CartState]
	api       CartService
	guard     *session.Guard
	logger    *slog.Logger
	loginPath string
}

// NewCartController creates a cart controller. loginPath is where the
// application is sent when the session is invalidated.
func NewCartController(api CartService, guard *session.Guard, logger *slog.Logger, loginPath string) *CartController {
	return &CartController{
		store:     state.NewStore(state.NewCartState()),
		api:       api,
		guard:     guard,
		logger:    logger,
		loginPath: loginPath,
	}
}

// Store exposes the cart store for UI subscription.
func (c *CartController) Store() *state.Store[state.CartState] {
	return c.store
}

// Load fetches the cart items and the server-computed total, then reconciles
// the store. Without a session it is a benign no-op. A load already in
// flight suppresses the new one.
func (c *CartController) Load(ctx context.Context) error {
	start := time.Now()

	if !c.guard.HasSession() {
		// Anonymous browsing is not an error state; just make sure the
		// loading flag is not left set.
		c.store.TryUpdate(
			func(s state.CartState) bool { return s.Status == state.StatusLoading },
			func(s state.CartState) state.CartState { s.Collection.Status = state.StatusIdle; return s },
		)
		observe(cartCollection, "load", outcomeSuppressed, start)
		return nil
	}

	if !c.guard.IsSessionFresh() {
		return c.expireSession(cartCollection, "load", start)
	}

	if _, started := c.store.TryUpdate(
		func(s state.CartState) bool { return s.Status != state.StatusLoading },
		func(s state.CartState) state.CartState { return s.Loading() },
	); !started {
		observe(cartCollection, "load", outcomeSuppressed, start)
		return nil
	}

	return c.fetch(ctx, start)
}

// fetch performs the two sequential reads (items, then total) and reconciles.
// Callers must already hold the loading status.
func (c *CartController) fetch(ctx context.Context, start time.Time) error {
	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	items, err := c.api.Items(ctx, token, userID)
	if err != nil {
		return c.fail(cartCollection, "load", msgCartLoad, err, start)
	}

	total, err := c.api.Total(ctx, token, userID)
	if err != nil {
		return c.fail(cartCollection, "load", msgCartLoad, err, start)
	}

	next := c.store.Update(func(s state.CartState) state.CartState {
		return s.Reconcile(items, total)
	})

	c.logger.DebugContext(ctx, "cart reconciled",
		slog.Int("items", next.Len()),
		slog.Int("item_count", next.ItemCount),
		slog.Float64("total", next.Total),
	)

	observe(cartCollection, "load", outcomeSuccess, start)
	return nil
}

// reload refreshes after a mutation. Unlike Load it assumes the session was
// just validated by the mutating call.
func (c *CartController) reload(ctx context.Context, start time.Time) error {
	if _, started := c.store.TryUpdate(
		func(s state.CartState) bool { return s.Status != state.StatusLoading },
		func(s state.CartState) state.CartState { return s.Loading() },
	); !started {
		return nil
	}
	return c.fetch(ctx, start)
}

// Add puts quantity units of a product into the remote cart and reloads.
// The server merges duplicate products by incrementing quantity.
func (c *CartController) Add(ctx context.Context, productID string, quantity int) error {
	start := time.Now()

	if err := c.requireSession(cartCollection, "add", "add items to your cart", start); err != nil {
		return err
	}

	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	if err := c.api.Add(ctx, token, userID, productID, quantity); err != nil {
		return c.fail(cartCollection, "add", msgCartAdd, err, start)
	}

	observe(cartCollection, "add", outcomeSuccess, start)
	return c.reload(ctx, time.Now())
}

// Update replaces the quantity on a cart entry and reloads. Quantities below
// one are rejected before any network call; the store is left untouched.
func (c *CartController) Update(ctx context.Context, cartID string, quantity int) error {
	start := time.Now()

	if quantity < 1 {
		observe(cartCollection, "update", outcomeFailure, start)
		return apperrors.InvalidInput("quantity must be at least 1")
	}

	if err := c.requireSession(cartCollection, "update", "update your cart", start); err != nil {
		return err
	}

	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	if err := c.api.UpdateQuantity(ctx, token, cartID, userID, quantity); err != nil {
		return c.fail(cartCollection, "update", msgCartUpdate, err, start)
	}

	observe(cartCollection, "update", outcomeSuccess, start)
	return c.reload(ctx, time.Now())
}

// Remove deletes a cart entry and reloads.
func (c *CartController) Remove(ctx context.Context, cartID string) error {
	start := time.Now()

	if err := c.requireSession(cartCollection, "remove", "modify your cart", start); err != nil {
		return err
	}

	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	if err := c.api.Remove(ctx, token, cartID, userID); err != nil {
		return c.fail(cartCollection, "remove", msgCartRemove, err, start)
	}

	observe(cartCollection, "remove", outcomeSuccess, start)
	return c.reload(ctx, time.Now())
}

// Clear empties the remote cart and resets the store directly; the result is
// deterministically empty so no reload is needed.
func (c *CartController) Clear(ctx context.Context) error {
	start := time.Now()

	if err := c.requireSession(cartCollection, "clear", "clear your cart", start); err != nil {
		return err
	}

	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	if err := c.api.Clear(ctx, token, userID); err != nil {
		return c.fail(cartCollection, "clear", msgCartClear, err, start)
	}

	c.store.Update(func(s state.CartState) state.CartState { return s.Clear() })
	observe(cartCollection, "clear", outcomeSuccess, start)
	return nil
}

// Reset drops local cart state on logout.
func (c *CartController) Reset() {
	c.store.Update(func(s state.CartState) state.CartState { return s.Clear() })
}

// requireSession gates a mutating operation: missing sessions are a blocking
// error, stale sessions take the expiry path.
func (c *CartController) requireSession(collection, operation, action string, start time.Time) error {
	if !c.guard.HasSession() {
		err := apperrors.NoSession(action)
		c.store.Update(func(s state.CartState) state.CartState { return s.Failed(err.Message) })
		observe(collection, operation, outcomeUnauthorized, start)
		return err
	}
	if !c.guard.IsSessionFresh() {
		return c.expireSession(collection, operation, start)
	}
	return nil
}

// expireSession handles a locally-detected stale credential identically to a
// server 401: record the error, clear the session, redirect to login.
func (c *CartController) expireSession(collection, operation string, start time.Time) error {
	c.store.Update(func(s state.CartState) state.CartState { return s.Failed(msgSessionExpired) })
	c.guard.InvalidateAndRedirect(c.loginPath)
	observe(collection, operation, outcomeUnauthorized, start)
	return apperrors.SessionExpired()
}

// fail translates an operation failure into store state. A 401 additionally
// invalidates the session and redirects; other failures leave the last
// known-good items in place.
func (c *CartController) fail(collection, operation, message string, err error, start time.Time) error {
	if isAuthFailure(err) {
		c.logger.Warn("cart credential rejected", slog.String("operation", operation))
		return c.expireSession(collection, operation, start)
	}

	c.store.Update(func(s state.CartState) state.CartState { return s.Failed(message) })
	observe(collection, operation, outcomeFailure, start)
	return err
}

// isAuthFailure reports whether an error represents a rejected credential.
func isAuthFailure(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrSessionExpired)
}
