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

// WishlistService implements the business logic for wishlist operations.
type WishlistService struct {
	repo     repository.WishlistRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
}

// GetItems returns the user's saved products. A user with no wishlist gets an
// empty slice.
func (s *WishlistService) GetItems(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	wl, err := s.getOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wl.Items, nil
}

// AddProduct saves a product to the user's wishlist. Product data comes from
// the catalog; a product that is already saved is rejected with a conflict.
func (s *WishlistService) AddProduct(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, ok := s.catalog.Get(productID)
	if !ok || !product.Active {
		return nil, apperrors.NotFound("product", productID)
	}

	wl, err := s.getOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.WishlistEntry{
		WishlistID:   uuid.New().String(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		ProductPhoto: product.Photo,
		CreatedAt:    time.Now().UTC(),
	}

	if !wl.Add(entry) {
		return nil, apperrors.AlreadyExists("wishlist entry", "product id", productID)
	}

	wl.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, wl); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistUpdated(ctx, wl); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product saved to wishlist",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return wl, nil
}

// RemoveEntry deletes a wishlist entry by its id.
func (s *WishlistService) RemoveEntry(ctx context.Context, userID, wishlistID string) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if wishlistID == "" {
		return nil, apperrors.InvalidInput("wishlist entry id is required")
	}

	wl, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("wishlist entry", wishlistID)
		}
		return nil, fmt.Errorf("get wishlist for remove: %w", err)
	}

	if !wl.Remove(wishlistID) {
		return nil, apperrors.NotFound("wishlist entry", wishlistID)
	}

	wl.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, wl); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistUpdated(ctx, wl); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "entry removed from wishlist",
		slog.String("user_id", userID),
		slog.String("wishlist_id", wishlistID),
	)

	return wl, nil
}

// Clear removes the user's wishlist entirely. Clearing a missing wishlist
// succeeds.
func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistUpdated(ctx, &domain.Wishlist{UserID: userID, Items: []domain.WishlistEntry{}}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist cleared",
		slog.String("user_id", userID),
	)

	return nil
}

// getOrCreateWishlist retrieves the wishlist for a user, creating an empty
// one if it does not exist.
func (s *WishlistService) getOrCreateWishlist(ctx context.Context, userID string) (*domain.Wishlist, error) {
	wl, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			now := time.Now().UTC()
			return &domain.Wishlist{
				UserID:    userID,
				Items:     []domain.WishlistEntry{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return wl, nil
}
