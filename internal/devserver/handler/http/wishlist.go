package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jyothimogili456/storesync/internal/devserver/service"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
	"github.com/jyothimogili456/storesync/pkg/httputil"
	"github.com/jyothimogili456/storesync/pkg/validator"
)

// WishlistHandler handles HTTP requests for the wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// AddProductRequest is the JSON request body for saving a product. The
// storefront sends denormalized product fields; the server resolves the
// authoritative data from the catalog, so only the product id is required.
type AddProductRequest struct {
	ProductID    string  `json:"productId" validate:"required"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	ProductPhoto string  `json:"productPhoto"`
}

// GetProducts handles GET /wishlist/getWishListProducts/{userId}
func (h *WishlistHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	items, err := h.service.GetItems(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dataResponse{Data: items})
}

// AddProduct handles POST /wishlist/add/{userId}
func (h *WishlistHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req AddProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	wl, err := h.service.AddProduct(r.Context(), userID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, dataResponse{Data: wl.Items})
}

// RemoveEntry handles DELETE /wishlist/remove/{wishlistId}/{userId}
func (h *WishlistHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	wishlistID := chi.URLParam(r, "wishlistId")
	if wishlistID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("wishlistId is required"), h.logger)
		return
	}

	wl, err := h.service.RemoveEntry(r.Context(), userID, wishlistID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dataResponse{Data: wl.Items})
}

// Clear handles DELETE /wishlist/clear/{userId}
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, statusResponse{Status: "cleared"})
}
