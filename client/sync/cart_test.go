package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jyothimogili456/storesync/client/session"
	"github.com/jyothimogili456/storesync/client/state"
	apperrors "github.com/jyothimogili456/storesync/pkg/errors"
)

// --- Mock Cart Service ---

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) Items(ctx context.Context, token, userID string) ([]state.CartItem, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]state.CartItem), args.Error(1)
}

func (m *mockCartService) Total(ctx context.Context, token, userID string) (float64, error) {
	args := m.Called(ctx, token, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockCartService) Add(ctx context.Context, token, userID, productID string, quantity int) error {
	args := m.Called(ctx, token, userID, productID, quantity)
	return args.Error(0)
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, token, cartID, userID string, quantity int) error {
	args := m.Called(ctx, token, cartID, userID, quantity)
	return args.Error(0)
}

func (m *mockCartService) Remove(ctx context.Context, token, cartID, userID string) error {
	args := m.Called(ctx, token, cartID, userID)
	return args.Error(0)
}

func (m *mockCartService) Clear(ctx context.Context, token, userID string) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

// --- Test Helpers ---

const loginPath = "/login"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func freshToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func expiredToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

// signedInGuard returns a guard with a valid session plus the storage and a
// pointer to the last navigation destination.
func signedInGuard(t *testing.T, token string) (*session.Guard, *session.MemoryStorage, *string) {
	t.Helper()
	storage := session.NewMemoryStorage()
	var dest string
	nav := session.NavigatorFunc(func(d string) { dest = d })
	g := session.NewGuard(storage, nav, newTestLogger())
	require.NoError(t, g.SignIn(token, session.Identity{ID: "user-1", Name: "Test"}))
	return g, storage, &dest
}

func anonymousGuard() *session.Guard {
	return session.NewGuard(session.NewMemoryStorage(), session.NavigatorFunc(func(string) {}), newTestLogger())
}

func cartItems() []state.CartItem {
	return []state.CartItem{
		{CartID: "c1", ProductID: "p1", ProductName: "Widget", ProductPrice: 9.99, Quantity: 2},
	}
}

// --- Load ---

func TestCartLoad_ReconcilesItemsAndTotal(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()

	token, _ := guard.Token()
	api.On("Items", ctx, token, "user-1").Return(cartItems(), nil)
	api.On("Total", ctx, token, "user-1").Return(19.98, nil)

	err := ctrl.Load(ctx)

	require.NoError(t, err)
	s := ctrl.Store().Get()
	assert.Equal(t, state.StatusReady, s.Status)
	assert.Len(t, s.Items, 1)
	assert.Equal(t, 19.98, s.Total)
	assert.Equal(t, 2, s.ItemCount)
	api.AssertExpectations(t)
}

func TestCartLoad_NoSessionIsNoOp(t *testing.T) {
	api := new(mockCartService)
	ctrl := NewCartController(api, anonymousGuard(), newTestLogger(), loginPath)

	err := ctrl.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, state.StatusIdle, ctrl.Store().Get().Status)
	api.AssertNotCalled(t, "Items", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartLoad_ConcurrentSuppressed(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)

	// Force the loading status as if a fetch were in flight.
	ctrl.Store().Update(func(s state.CartState) state.CartState { return s.Loading() })

	err := ctrl.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, state.StatusLoading, ctrl.Store().Get().Status)
	api.AssertNotCalled(t, "Items", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartLoad_StaleTokenInvalidatesSession(t *testing.T) {
	api := new(mockCartService)
	guard, storage, dest := signedInGuard(t, expiredToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)

	err := ctrl.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.Equal(t, state.StatusError, ctrl.Store().Get().Status)
	assert.Equal(t, loginPath, *dest)

	_, hasToken := storage.Get(session.KeyUserToken)
	assert.False(t, hasToken)
	api.AssertNotCalled(t, "Items", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartLoad_ServerRejectedCredential(t *testing.T) {
	api := new(mockCartService)
	guard, storage, dest := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()

	token, _ := guard.Token()
	api.On("Items", ctx, token, "user-1").Return(nil, apperrors.Unauthorized("cart: token revoked"))

	err := ctrl.Load(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.Equal(t, loginPath, *dest)

	_, hasToken := storage.Get(session.KeyUserToken)
	assert.False(t, hasToken)
}

func TestCartLoad_FailureKeepsLastKnownGoodItems(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()
	token, _ := guard.Token()

	api.On("Items", ctx, token, "user-1").Return(cartItems(), nil).Once()
	api.On("Total", ctx, token, "user-1").Return(19.98, nil).Once()
	require.NoError(t, ctrl.Load(ctx))

	api.On("Items", ctx, token, "user-1").Return(nil, errors.New("connection refused")).Once()
	err := ctrl.Load(ctx)

	require.Error(t, err)
	s := ctrl.Store().Get()
	assert.Equal(t, state.StatusError, s.Status)
	assert.Equal(t, "failed to load cart", s.Error)
	assert.Len(t, s.Items, 1)
}

func TestCartLoad_TotalFailureIsLoadFailure(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()
	token, _ := guard.Token()

	api.On("Items", ctx, token, "user-1").Return(cartItems(), nil)
	api.On("Total", ctx, token, "user-1").Return(0.0, errors.New("connection refused"))

	err := ctrl.Load(ctx)

	require.Error(t, err)
	assert.Equal(t, state.StatusError, ctrl.Store().Get().Status)
}

// --- Add ---

func TestCartAdd_ReloadsAfterMutation(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()
	token, _ := guard.Token()

	api.On("Add", ctx, token, "user-1", "p1", 2).Return(nil)
	api.On("Items", ctx, token, "user-1").Return(cartItems(), nil)
	api.On("Total", ctx, token, "user-1").Return(19.98, nil)

	err := ctrl.Add(ctx, "p1", 2)

	require.NoError(t, err)
	s := ctrl.Store().Get()
	assert.Equal(t, state.StatusReady, s.Status)
	assert.Equal(t, 19.98, s.Total)
	api.AssertExpectations(t)
}

func TestCartAdd_NoSessionBlocks(t *testing.T) {
	api := new(mockCartService)
	ctrl := NewCartController(api, anonymousGuard(), newTestLogger(), loginPath)

	err := ctrl.Add(context.Background(), "p1", 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoSession)
	assert.Equal(t, state.StatusError, ctrl.Store().Get().Status)
	api.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Update ---

func TestCartUpdate_QuantityFloorRejectedLocally(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)

	before := ctrl.Store().Get()
	err := ctrl.Update(context.Background(), "c1", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, before, ctrl.Store().Get())
	api.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUpdate_ReplacesQuantityAndReloads(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()
	token, _ := guard.Token()

	updated := cartItems()
	updated[0].Quantity = 5

	api.On("UpdateQuantity", ctx, token, "c1", "user-1", 5).Return(nil)
	api.On("Items", ctx, token, "user-1").Return(updated, nil)
	api.On("Total", ctx, token, "user-1").Return(49.95, nil)

	err := ctrl.Update(ctx, "c1", 5)

	require.NoError(t, err)
	s := ctrl.Store().Get()
	assert.Equal(t, 5, s.Items[0].Quantity)
	assert.Equal(t, 5, s.ItemCount)
	api.AssertExpectations(t)
}

// --- Remove / Clear ---

func TestCartRemove_Reloads(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()
	token, _ := guard.Token()

	api.On("Remove", ctx, token, "c1", "user-1").Return(nil)
	api.On("Items", ctx, token, "user-1").Return([]state.CartItem{}, nil)
	api.On("Total", ctx, token, "user-1").Return(0.0, nil)

	err := ctrl.Remove(ctx, "c1")

	require.NoError(t, err)
	s := ctrl.Store().Get()
	assert.Empty(t, s.Items)
	assert.Zero(t, s.Total)
	api.AssertExpectations(t)
}

func TestCartClear_ResetsStoreWithoutReload(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()
	token, _ := guard.Token()

	ctrl.Store().Update(func(s state.CartState) state.CartState {
		return s.Reconcile(cartItems(), 19.98)
	})

	api.On("Clear", ctx, token, "user-1").Return(nil)

	err := ctrl.Clear(ctx)

	require.NoError(t, err)
	s := ctrl.Store().Get()
	assert.Equal(t, state.StatusIdle, s.Status)
	assert.Empty(t, s.Items)
	assert.Zero(t, s.Total)
	api.AssertNotCalled(t, "Items", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartClear_FailurePreservesItems(t *testing.T) {
	api := new(mockCartService)
	guard, _, _ := signedInGuard(t, freshToken(t))
	ctrl := NewCartController(api, guard, newTestLogger(), loginPath)
	ctx := context.Background()
	token, _ := guard.Token()

	ctrl.Store().Update(func(s state.CartState) state.CartState {
		return s.Reconcile(cartItems(), 19.98)
	})

	api.On("Clear", ctx, token, "user-1").Return(errors.New("connection refused"))

	err := ctrl.Clear(ctx)

	require.Error(t, err)
	s := ctrl.Store().Get()
	assert.Equal(t, state.StatusError, s.Status)
	assert.Len(t, s.Items, 1)
}

func TestCartReset_DropsLocalState(t *testing.T) {
	ctrl := NewCartController(new(mockCartService), anonymousGuard(), newTestLogger(), loginPath)
	ctrl.Store().Update(func(s state.CartState) state.CartState {
		return s.Reconcile(cartItems(), 19.98)
	})

	ctrl.Reset()

	s := ctrl.Store().Get()
	assert.Equal(t, state.StatusIdle, s.Status)
	assert.Empty(t, s.Items)
}
