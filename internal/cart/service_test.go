package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/domain"
)

type memCartRepo struct {
	carts map[int64]domain.CartData
	saves int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[int64]domain.CartData)}
}

func (r *memCartRepo) GetCart(_ context.Context, userID int64) (domain.CartData, error) {
	cart, ok := r.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

func (r *memCartRepo) SaveCart(_ context.Context, userID int64, cart domain.CartData) error {
	r.carts[userID] = cart
	r.saves++
	return nil
}

func TestAddItem_RepeatedAddsAccumulate(t *testing.T) {
	repo := newMemCartRepo()
	repo.carts[1] = domain.NewCartData()
	svc := NewService(repo)

	for i := 0; i < 5; i++ {
		_, err := svc.AddItem(context.Background(), 1, "p1", "M")
		require.NoError(t, err)
	}
	cart, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Quantity("p1", "M"))
	assert.Equal(t, 5, repo.saves, "every add persists the whole cart")
}

func TestAddItem_DistinctSizesTrackedSeparately(t *testing.T) {
	repo := newMemCartRepo()
	repo.carts[1] = domain.NewCartData()
	svc := NewService(repo)

	_, err := svc.AddItem(context.Background(), 1, "p1", "M")
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 1, "p1", "L")
	require.NoError(t, err)

	cart, _ := svc.GetCart(context.Background(), 1)
	assert.Equal(t, 1, cart.Quantity("p1", "M"))
	assert.Equal(t, 1, cart.Quantity("p1", "L"))
}

func TestSetItemQuantity_MissingProductFailsWithoutSave(t *testing.T) {
	repo := newMemCartRepo()
	repo.carts[1] = domain.NewCartData()
	svc := NewService(repo)

	_, err := svc.SetItemQuantity(context.Background(), 1, "never-added", "M", 3)
	assert.ErrorIs(t, err, domain.ErrCartItemMissing)
	assert.Zero(t, repo.saves)
}

func TestSetItemQuantity_OverwritesExisting(t *testing.T) {
	repo := newMemCartRepo()
	repo.carts[1] = domain.NewCartData()
	svc := NewService(repo)

	_, err := svc.AddItem(context.Background(), 1, "p1", "M")
	require.NoError(t, err)

	cart, err := svc.SetItemQuantity(context.Background(), 1, "p1", "M", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, cart.Quantity("p1", "M"))
}

func TestGetCart_UnknownUser(t *testing.T) {
	svc := NewService(newMemCartRepo())
	_, err := svc.GetCart(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
