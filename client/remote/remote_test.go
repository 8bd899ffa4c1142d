package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
	"github.com/jyothimogili456/storesync/pkg/httpclient"
)

func newTestDoer() Doer {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Timeout = 5 * time.Second
	return httpclient.New(cfg)
}

// ============================================================================
// Cart API
// ============================================================================

func TestCartItems_EnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart/getCartItems/user-1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"cartId": "c1", "productId": "p1", "productName": "Widget", "productPrice": 9.99, "quantity": 2},
			},
		})
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	items, err := api.Items(context.Background(), "tok", "user-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].CartID)
	assert.Equal(t, 9.99, items[0].ProductPrice)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartItems_BareArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"cartId": "c1", "productId": "p1", "quantity": 1},
		})
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	items, err := api.Items(context.Background(), "tok", "user-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestCartTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/total/user-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]float64{"cartTotal": 42.5})
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	total, err := api.Total(context.Background(), "tok", "user-1")

	require.NoError(t, err)
	assert.Equal(t, 42.5, total)
}

func TestCartAdd_SendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/add/user-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body.ProductID)
		assert.Equal(t, 3, body.Quantity)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	err := api.Add(context.Background(), "tok", "user-1", "p1", 3)

	require.NoError(t, err)
}

func TestCartUpdateQuantity_PathAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/cart/updateQuantity/c1/user-1", r.URL.Path)

		var body struct {
			Quantity int `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 5, body.Quantity)
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	err := api.UpdateQuantity(context.Background(), "tok", "c1", "user-1", 5)

	require.NoError(t, err)
}

func TestCartRemove_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cart/remove/c1/user-1", r.URL.Path)
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	require.NoError(t, api.Remove(context.Background(), "tok", "c1", "user-1"))
}

func TestCartClear_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cart/clear/user-1", r.URL.Path)
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	require.NoError(t, api.Clear(context.Background(), "tok", "user-1"))
}

// ============================================================================
// Wishlist API
// ============================================================================

func TestWishlistItems_DataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wishlist/getWishListProducts/user-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"wishlistId": "w1", "productId": "p1", "productName": "Widget", "productPrice": 9.99},
			},
		})
	}))
	defer srv.Close()

	api := NewWishlistAPI(srv.URL, newTestDoer())
	items, err := api.Items(context.Background(), "tok", "user-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "w1", items[0].WishlistID)
}

func TestWishlistAdd_DuplicateMapsToAlreadyExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "ALREADY_EXISTS", "message": "product already on wishlist"},
		})
	}))
	defer srv.Close()

	api := NewWishlistAPI(srv.URL, newTestDoer())
	err := api.Add(context.Background(), "tok", "user-1", AddInput{ProductID: "p1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestWishlistRemove_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/wishlist/remove/w1/user-1", r.URL.Path)
	}))
	defer srv.Close()

	api := NewWishlistAPI(srv.URL, newTestDoer())
	require.NoError(t, api.Remove(context.Background(), "tok", "w1", "user-1"))
}

// ============================================================================
// Error translation
// ============================================================================

func TestDo_UnauthorizedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "UNAUTHORIZED", "message": "token expired"},
		})
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	_, err := api.Items(context.Background(), "tok", "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDo_UnauthorizedWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	_, err := api.Items(context.Background(), "tok", "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDo_NotFoundEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "NOT_FOUND", "message": "cart item not found"},
		})
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	err := api.Remove(context.Background(), "tok", "missing", "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPathEscape_UserIDWithSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	api := NewCartAPI(srv.URL, newTestDoer())
	_, err := api.Items(context.Background(), "tok", "user/1")

	require.NoError(t, err)
	assert.Equal(t, "/cart/getCartItems/user%2F1", gotPath)
}
