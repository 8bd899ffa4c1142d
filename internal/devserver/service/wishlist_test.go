package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jyothimogili456/storesync/internal/devserver/catalog"
	"github.com/jyothimogili456/storesync/internal/devserver/domain"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
)

func newTestWishlistService(repo *mockWishlistRepository) *WishlistService {
	return NewWishlistService(repo, catalog.NewSeeded(), newTestProducer(), newTestLogger())
}

func wishlistWithEntry(userID string) *domain.Wishlist {
	now := time.Now().UTC()
	return &domain.Wishlist{
		UserID: userID,
		Items: []domain.WishlistEntry{
			{
				WishlistID:   "wl-1",
				ProductID:    "prod-1001",
				ProductName:  "Wireless Headphones",
				ProductPrice: 59.99,
				CreatedAt:    now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- GetItems ---

func TestWishlistGetItems_EmptyForNewUser(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("wishlist", "user-1"))

	items, err := svc.GetItems(ctx, "user-1")

	require.NoError(t, err)
	assert.Empty(t, items)
}

// --- AddProduct ---

func TestAddProduct_NewWishlist(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("wishlist", "user-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)

	wl, err := svc.AddProduct(ctx, "user-1", "prod-1002")

	require.NoError(t, err)
	require.Len(t, wl.Items, 1)
	assert.NotEmpty(t, wl.Items[0].WishlistID)
	assert.Equal(t, "Mechanical Keyboard", wl.Items[0].ProductName)
	assert.Equal(t, 89.50, wl.Items[0].ProductPrice)
	repo.AssertExpectations(t)
}

func TestAddProduct_DuplicateConflicts(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(wishlistWithEntry("user-1"), nil)

	_, err := svc.AddProduct(ctx, "user-1", "prod-1001")

	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddProduct_UnknownProduct(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(repo)

	_, err := svc.AddProduct(context.Background(), "user-1", "prod-9999")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- RemoveEntry / Clear ---

func TestRemoveEntry_DeletesEntry(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(wishlistWithEntry("user-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)

	wl, err := svc.RemoveEntry(ctx, "user-1", "wl-1")

	require.NoError(t, err)
	assert.Empty(t, wl.Items)
}

func TestRemoveEntry_UnknownEntry(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(wishlistWithEntry("user-1"), nil)

	_, err := svc.RemoveEntry(ctx, "user-1", "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistClear_DeletesWishlist(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "user-1").Return(nil)

	err := svc.Clear(ctx, "user-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
