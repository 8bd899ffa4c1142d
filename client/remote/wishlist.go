package remote

import (
	"context"
	"net/http"

	"github.com/jyothimogili456/storesync/client/state"
)

const wishlistServiceName = "wishlist"

// WishlistAPI is the REST client for the user's server-side wishlist.
type WishlistAPI struct {
	client
}

// NewWishlistAPI creates a wishlist client against the given base URL.
func NewWishlistAPI(baseURL string, doer Doer) *WishlistAPI {
	return &WishlistAPI{client: newClient(baseURL, doer)}
}

// Items fetches the user's saved products.
// GET /wishlist/getWishListProducts/{userId}
func (a *WishlistAPI) Items(ctx context.Context, token, userID string) ([]state.WishlistItem, error) {
	resp, err := a.do(ctx, http.MethodGet, token,
		"/wishlist/getWishListProducts/"+pathEscape(userID), nil, wishlistServiceName)
	if err != nil {
		return nil, err
	}
	return decodeList[state.WishlistItem](resp, "data")
}

// AddInput is the product payload for saving a product to the wishlist.
type AddInput struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	ProductPhoto string  `json:"productPhoto,omitempty"`
}

// Add saves a product. A duplicate product is reported by the server as a
// conflict; callers decide whether that is an error (the sync controller
// treats it as success).
// POST /wishlist/add/{userId}
func (a *WishlistAPI) Add(ctx context.Context, token, userID string, input AddInput) error {
	resp, err := a.do(ctx, http.MethodPost, token, "/wishlist/add/"+pathEscape(userID), input, wishlistServiceName)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// Remove deletes a wishlist entry.
// DELETE /wishlist/remove/{wishlistId}/{userId}
func (a *WishlistAPI) Remove(ctx context.Context, token, wishlistID, userID string) error {
	resp, err := a.do(ctx, http.MethodDelete, token,
		"/wishlist/remove/"+pathEscape(wishlistID)+"/"+pathEscape(userID), nil, wishlistServiceName)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// Clear removes every saved product.
// DELETE /wishlist/clear/{userId}
func (a *WishlistAPI) Clear(ctx context.Context, token, userID string) error {
	resp, err := a.do(ctx, http.MethodDelete, token, "/wishlist/clear/"+pathEscape(userID), nil, wishlistServiceName)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}
