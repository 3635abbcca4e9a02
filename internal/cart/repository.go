package cart

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/domain"
)

// Repository reads and writes the cart column on the user row. The map is
// always persisted whole; concurrent writers race last-write-wins.
type Repository interface {
	GetCart(ctx context.Context, userID int64) (domain.CartData, error)
	SaveCart(ctx context.Context, userID int64, cart domain.CartData) error
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) GetCart(ctx context.Context, userID int64) (domain.CartData, error) {
	var user domain.User
	if err := r.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	if user.CartData == nil {
		return domain.NewCartData(), nil
	}
	return user.CartData, nil
}

func (r *GormRepository) SaveCart(ctx context.Context, userID int64, cart domain.CartData) error {
	return r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"cart_data":  cart,
			"updated_at": time.Now(),
		}).Error
}
