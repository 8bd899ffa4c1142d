package http

import (
	"log/slog"
	"net/http"

	"github.com/jyothimogili456/storesync/internal/devserver/auth"
	"github.com/jyothimogili456/storesync/internal/devserver/catalog"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
	"github.com/jyothimogili456/storesync/pkg/httputil"
	"github.com/jyothimogili456/storesync/pkg/validator"
)

// AuthHandler issues development bearer tokens. There is no password check;
// any user id gets a signed token so client flows can be exercised locally.
type AuthHandler struct {
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		logger: logger,
	}
}

// IssueTokenRequest is the JSON request body for minting a dev token.
type IssueTokenRequest struct {
	UserID string `json:"userId" validate:"required"`
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// IssueTokenResponse carries the minted token and the identity snapshot the
// client persists alongside it.
type IssueTokenResponse struct {
	Token string        `json:"token"`
	User  TokenUserData `json:"user"`
}

// TokenUserData is the identity snapshot within a token response.
type TokenUserData struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// IssueToken handles POST /auth/token
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req IssueTokenRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	token, err := h.tokens.Mint(req.UserID, req.Email)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to mint token",
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()),
		)
		httputil.WriteError(w, r, apperrors.Internal(err), h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "dev token issued", slog.String("user_id", req.UserID))

	httputil.WriteJSON(w, http.StatusOK, IssueTokenResponse{
		Token: token,
		User:  TokenUserData{ID: req.UserID, Name: req.Name, Email: req.Email},
	})
}

// CatalogHandler serves the seeded product catalog.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": h.catalog.List()})
}
