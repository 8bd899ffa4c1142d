package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jyothimogili456/storesync/internal/devserver/service"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
	"github.com/jyothimogili456/storesync/pkg/httputil"
	"github.com/jyothimogili456/storesync/pkg/middleware"
	"github.com/jyothimogili456/storesync/pkg/validator"
)

// CartHandler handles HTTP requests for the cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityRequest is the JSON request body for replacing an entry's
// quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// GetItems handles GET /cart/getCartItems/{userId}
func (h *CartHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	items, err := h.service.GetItems(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, itemsResponse{Items: items})
}

// GetTotal handles GET /cart/total/{userId}
func (h *CartHandler) GetTotal(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	total, err := h.service.Total(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, totalResponse{CartTotal: total})
}

// AddItem handles POST /cart/add/{userId}
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, itemsResponse{Items: cart.Items})
}

// UpdateQuantity handles PUT /cart/updateQuantity/{cartId}/{userId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	cartID := chi.URLParam(r, "cartId")
	if cartID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("cartId is required"), h.logger)
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), userID, cartID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, itemsResponse{Items: cart.Items})
}

// RemoveItem handles DELETE /cart/remove/{cartId}/{userId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUserID(w, r, h.logger)
	if !ok {
		return
	}

	cartID := chi.URLParam(r, "cartId")
	if cartID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("cartId is required"), h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), userID, cartID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, itemsResponse{Items: cart.Items})
}

// Clear handles DELETE /cart/clear/{userId}
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
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

// authorizedUserID extracts the userId path parameter and verifies it matches
// the authenticated subject. Acting on another user's collection is forbidden.
func authorizedUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("userId is required"), logger)
		return "", false
	}

	if subject := middleware.UserIDFromContext(r.Context()); subject != userID {
		httputil.WriteError(w, r, apperrors.Forbidden("token subject does not match user id"), logger)
		return "", false
	}

	return userID, true
}
