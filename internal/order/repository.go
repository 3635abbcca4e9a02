package order

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/domain"
)

// OrderRepository handles database operations for orders. The two-document
// updates (order row plus cart column) run inside store transactions.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	DeleteByID(ctx context.Context, id int64) error
	SetReceipt(ctx context.Context, id int64, receipt string) error
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error

	// CreateWithCartClear persists the order and empties the user's cart in
	// one transaction.
	CreateWithCartClear(ctx context.Context, order *domain.Order) error

	// MarkPaidWithCartClear flips the paid flag and empties the user's cart
	// in one transaction.
	MarkPaidWithCartClear(ctx context.Context, orderID, userID int64) error
}

// UserDirectory resolves shopper contact details for notifications.
type UserDirectory interface {
	EmailByID(ctx context.Context, id int64) (string, error)
}

// GormOrderRepository is the GORM implementation of OrderRepository.
type GormOrderRepository struct {
	DB *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{DB: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.DB.WithContext(ctx).Delete(&domain.Order{}, id).Error
}

func (r *GormOrderRepository) SetReceipt(ctx context.Context, id int64, receipt string) error {
	return r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"receipt":    receipt,
			"updated_at": time.Now(),
		}).Error
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *GormOrderRepository) CreateWithCartClear(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return clearCart(tx, order.UserID)
	})
}

func (r *GormOrderRepository) MarkPaidWithCartClear(ctx context.Context, orderID, userID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"payment":    true,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		return clearCart(tx, userID)
	})
}

func clearCart(tx *gorm.DB, userID int64) error {
	return tx.Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"cart_data":  domain.NewCartData(),
			"updated_at": time.Now(),
		}).Error
}

// GormUserDirectory is the GORM implementation of UserDirectory.
type GormUserDirectory struct {
	DB *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{DB: db}
}

func (r *GormUserDirectory) EmailByID(ctx context.Context, id int64) (string, error) {
	var user domain.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return "", err
	}
	return user.Email, nil
}
