package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jyothimogili456/storesync/client/remote"
	"github.com/jyothimogili456/storesync/client/session"
	"github.com/jyothimogili456/storesync/client/state"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
)

// WishlistService is the remote wishlist contract the controller drives.
// *remote.WishlistAPI satisfies it.
type WishlistService interface {
	Items(ctx context.Context, token, userID string) ([]state.WishlistItem, error)
	Add(ctx context.Context, token, userID string, input remote.AddInput) error
	Remove(ctx context.Context, token, wishlistID, userID string) error
	Clear(ctx context.Context, token, userID string) error
}

const (
	wishlistCollection = "wishlist"

	msgWishlistLoad   = "failed to load wishlist"
	msgWishlistAdd    = "failed to save product to wishlist"
	msgWishlistRemove = "failed to remove wishlist entry"
	msgWishlistClear  = "failed to clear wishlist"
)

// WishlistController keeps the local wishlist store reconciled with the
// remote wishlist.
type WishlistController struct {
	store     *state.Store[state.WishlistState]
	api       WishlistService
	guard     *session.Guard
	logger    *slog.Logger
	loginPath string
}

// NewWishlistController creates a wishlist controller. loginPath is where the
// application is sent when the session is invalidated.
func NewWishlistController(api WishlistService, guard *session.Guard, logger *slog.Logger, loginPath string) *WishlistController {
	return &WishlistController{
		store:     state.NewStore(state.NewWishlistState()),
		api:       api,
		guard:     guard,
		logger:    logger,
		loginPath: loginPath,
	}
}

// Store exposes the wishlist store for UI subscription.
func (c *WishlistController) Store() *state.Store[state.WishlistState] {
	return c.store
}

// Load fetches the saved products and reconciles the store. Without a
// session it is a benign no-op. A load already in flight, or a wishlist that
// is already populated, suppresses the fetch; mutations refresh through
// reload instead, which skips the populated check.
func (c *WishlistController) Load(ctx context.Context) error {
	start := time.Now()

	if !c.guard.HasSession() {
		c.store.TryUpdate(
			func(s state.WishlistState) bool { return s.Status == state.StatusLoading },
			func(s state.WishlistState) state.WishlistState { s.Collection.Status = state.StatusIdle; return s },
		)
		observe(wishlistCollection, "load", outcomeSuppressed, start)
		return nil
	}

	if !c.guard.IsSessionFresh() {
		return c.expireSession(wishlistCollection, "load", start)
	}

	if _, started := c.store.TryUpdate(
		func(s state.WishlistState) bool {
			if s.Status == state.StatusLoading {
				return false
			}
			// Already populated; nothing on the wishlist changes without
			// going through this controller, so skip the refetch.
			if s.Status == state.StatusReady && s.Len() > 0 {
				return false
			}
			return true
		},
		func(s state.WishlistState) state.WishlistState { return s.Loading() },
	); !started {
		observe(wishlistCollection, "load", outcomeSuppressed, start)
		return nil
	}

	return c.fetch(ctx, start)
}

// fetch reads the remote wishlist and reconciles. Callers must already hold
// the loading status.
func (c *WishlistController) fetch(ctx context.Context, start time.Time) error {
	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	items, err := c.api.Items(ctx, token, userID)
	if err != nil {
		return c.fail(wishlistCollection, "load", msgWishlistLoad, err, start)
	}

	next := c.store.Update(func(s state.WishlistState) state.WishlistState {
		return s.Reconcile(items)
	})

	c.logger.DebugContext(ctx, "wishlist reconciled", slog.Int("items", next.Len()))

	observe(wishlistCollection, "load", outcomeSuccess, start)
	return nil
}

// reload refreshes after a mutation, bypassing the populated-wishlist check.
func (c *WishlistController) reload(ctx context.Context, start time.Time) error {
	if _, started := c.store.TryUpdate(
		func(s state.WishlistState) bool { return s.Status != state.StatusLoading },
		func(s state.WishlistState) state.WishlistState { return s.Loading() },
	); !started {
		return nil
	}
	return c.fetch(ctx, start)
}

// Add saves a product to the remote wishlist and reloads. A product already
// on the wishlist is not an error; the server's conflict response is treated
// as success.
func (c *WishlistController) Add(ctx context.Context, input remote.AddInput) error {
	start := time.Now()

	if err := c.requireSession(wishlistCollection, "add", "save products to your wishlist", start); err != nil {
		return err
	}

	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	if err := c.api.Add(ctx, token, userID, input); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			c.logger.Debug("product already on wishlist", slog.String("product_id", input.ProductID))
		} else {
			return c.fail(wishlistCollection, "add", msgWishlistAdd, err, start)
		}
	}

	observe(wishlistCollection, "add", outcomeSuccess, start)
	return c.reload(ctx, time.Now())
}

// Remove deletes a wishlist entry and reloads.
func (c *WishlistController) Remove(ctx context.Context, wishlistID string) error {
	start := time.Now()

	if err := c.requireSession(wishlistCollection, "remove", "modify your wishlist", start); err != nil {
		return err
	}

	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	if err := c.api.Remove(ctx, token, wishlistID, userID); err != nil {
		return c.fail(wishlistCollection, "remove", msgWishlistRemove, err, start)
	}

	observe(wishlistCollection, "remove", outcomeSuccess, start)
	return c.reload(ctx, time.Now())
}

// Clear removes every saved product and resets the store directly.
func (c *WishlistController) Clear(ctx context.Context) error {
	start := time.Now()

	if err := c.requireSession(wishlistCollection, "clear", "clear your wishlist", start); err != nil {
		return err
	}

	token, _ := c.guard.Token()
	userID, _ := c.guard.UserID()

	if err := c.api.Clear(ctx, token, userID); err != nil {
		return c.fail(wishlistCollection, "clear", msgWishlistClear, err, start)
	}

	c.store.Update(func(s state.WishlistState) state.WishlistState { return s.Clear() })
	observe(wishlistCollection, "clear", outcomeSuccess, start)
	return nil
}

// Reset drops local wishlist state on logout.
func (c *WishlistController) Reset() {
	c.store.Update(func(s state.WishlistState) state.WishlistState { return s.Clear() })
}

func (c *WishlistController) requireSession(collection, operation, action string, start time.Time) error {
	if !c.guard.HasSession() {
		err := apperrors.NoSession(action)
		c.store.Update(func(s state.WishlistState) state.WishlistState { return s.Failed(err.Message) })
		observe(collection, operation, outcomeUnauthorized, start)
		return err
	}
	if !c.guard.IsSessionFresh() {
		return c.expireSession(collection, operation, start)
	}
	return nil
}

func (c *WishlistController) expireSession(collection, operation string, start time.Time) error {
	c.store.Update(func(s state.WishlistState) state.WishlistState { return s.Failed(msgSessionExpired) })
	c.guard.InvalidateAndRedirect(c.loginPath)
	observe(collection, operation, outcomeUnauthorized, start)
	return apperrors.SessionExpired()
}

func (c *WishlistController) fail(collection, operation, message string, err error, start time.Time) error {
	if isAuthFailure(err) {
		c.logger.Warn("wishlist credential rejected", slog.String("operation", operation))
		return c.expireSession(collection, operation, start)
	}

	c.store.Update(func(s state.WishlistState) state.WishlistState { return s.Failed(message) })
	observe(collection, operation, outcomeFailure, start)
	return err
}
