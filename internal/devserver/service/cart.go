// Package service implements the devserver's cart and wishlist business
// logic. Services validate input, denormalize product data from the catalog,
// and persist aggregates through the repositories. Event publishing failures
// are logged but never fail the request.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jyothimogili456/storesync/internal/devserver/catalog"
	"github.com/jyothimogili456/storesync/internal/devserver/domain"
	"github.com/jyothimogili456/storesync/internal/devserver/event"
	"github.com/jyothimogili456/storesync/internal/devserver/repository"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
)

// MaxQuantityPerItem is the maximum quantity allowed for a single cart entry.
const MaxQuantityPerItem = 100

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetItems returns the entries in the user's cart. A user with no cart gets
// an empty slice.
func (s *CartService) GetItems(ctx context.Context, userID string) ([]domain.CartEntry, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// Total returns the current cart total.
func (s *CartService) Total(ctx context.Context, userID string) (float64, error) {
	if userID == "" {
		return 0, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cart.Total(), nil
}

// AddItem adds a product to the user's cart, merging with an existing entry
// for the same product by increasing its quantity. Product data is
// denormalized from the catalog.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	product, ok := s.catalog.Get(productID)
	if !ok || !product.Active {
		return nil, apperrors.NotFound("product", productID)
	}
	if product.StockCount < 1 {
		return nil, apperrors.Conflict("product is out of stock")
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := cart.Merge(domain.CartEntry{
		CartID:       uuid.New().String(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     quantity,
		ProductPhoto: product.Photo,
		StockCount:   product.StockCount,
		ProductCode:  product.Code,
		Description:  product.Description,
	})

	if entry.Quantity > product.StockCount {
		return nil, apperrors.Conflict(fmt.Sprintf("only %d units in stock", product.StockCount))
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// UpdateQuantity replaces the quantity on a cart entry.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, cartID string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart entry id is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart item", cartID)
		}
		return nil, fmt.Errorf("get cart for update: %w", err)
	}

	if !cart.SetQuantity(cartID, quantity) {
		return nil, apperrors.NotFound("cart item", cartID)
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart entry quantity updated",
		slog.String("user_id", userID),
		slog.String("cart_id", cartID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a cart entry.
func (s *CartService) RemoveItem(ctx context.Context, userID, cartID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart entry id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart item", cartID)
		}
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}

	if !cart.Remove(cartID) {
		return nil, apperrors.NotFound("cart item", cartID)
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "entry removed from cart",
		slog.String("user_id", userID),
		slog.String("cart_id", cartID),
	)

	return cart, nil
}

// Clear removes the user's cart entirely. Clearing a missing cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("user_id", userID),
	)

	return nil
}

// getOrCreateCart retrieves the cart for a user, creating an empty one if it
// does not exist.
func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			now := time.Now().UTC()
			return &domain.Cart{
				UserID:    userID,
				Items:     []domain.CartEntry{},
				CreatedAt: now,
				UpdatedAt: now,
				ExpiresAt: now.Add(s.cartTTL),
			}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
