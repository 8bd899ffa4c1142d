package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jyothimogili456/storesync/client/state"
)

const cartServiceName = "cart"

// CartAPI is the REST client for the user's server-side cart.
type CartAPI struct {
	client
}

// NewCartAPI creates a cart client against the given base URL.
func NewCartAPI(baseURL string, doer Doer) *CartAPI {
	return &CartAPI{client: newClient(baseURL, doer)}
}

// Items fetches the user's cart entries.
// GET /cart/getCartItems/{userId}
func (a *CartAPI) Items(ctx context.Context, token, userID string) ([]state.CartItem, error) {
	resp, err := a.do(ctx, http.MethodGet, token, "/cart/getCartItems/"+pathEscape(userID), nil, cartServiceName)
	if err != nil {
		return nil, err
	}
	return decodeList[state.CartItem](resp, "items")
}

// Total fetches the server-computed cart total.
// GET /cart/total/{userId}
func (a *CartAPI) Total(ctx context.Context, token, userID string) (float64, error) {
	resp, err := a.do(ctx, http.MethodGet, token, "/cart/total/"+pathEscape(userID), nil, cartServiceName)
	if err != nil {
		return 0, err
	}
	defer discard(resp)

	var out struct {
		CartTotal float64 `json:"cartTotal"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode cart total: %w", err)
	}
	return out.CartTotal, nil
}

// Add puts a product into the cart; the server merges duplicates by
// incrementing quantity.
// POST /cart/add/{userId}
func (a *CartAPI) Add(ctx context.Context, token, userID, productID string, quantity int) error {
	body := struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}

	resp, err := a.do(ctx, http.MethodPost, token, "/cart/add/"+pathEscape(userID), body, cartServiceName)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// UpdateQuantity replaces the quantity on a cart entry.
// PUT /cart/updateQuantity/{cartId}/{userId}
func (a *CartAPI) UpdateQuantity(ctx context.Context, token, cartID, userID string, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	resp, err := a.do(ctx, http.MethodPut, token,
		"/cart/updateQuantity/"+pathEscape(cartID)+"/"+pathEscape(userID), body, cartServiceName)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// Remove deletes a cart entry.
// DELETE /cart/remove/{cartId}/{userId}
func (a *CartAPI) Remove(ctx context.Context, token, cartID, userID string) error {
	resp, err := a.do(ctx, http.MethodDelete, token,
		"/cart/remove/"+pathEscape(cartID)+"/"+pathEscape(userID), nil, cartServiceName)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// Clear empties the user's cart.
// DELETE /cart/clear/{userId}
func (a *CartAPI) Clear(ctx context.Context, token, userID string) error {
	resp, err := a.do(ctx, http.MethodDelete, token, "/cart/clear/"+pathEscape(userID), nil, cartServiceName)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}
