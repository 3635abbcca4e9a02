package settings

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/pkg/common"
)

// Shop settings keys, seeded with defaults at startup.
const (
	CategoryShop       = "shop"
	KeyCurrency        = "Currency"
	KeyDeliveryCharge  = "DeliveryCharge"
	DefaultCurrency    = "inr"
	DefaultDeliveryFee = 10.0
)

// Manager reads runtime settings from the shop_config table.
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// GetString returns the stored value, empty when missing.
func (m *Manager) GetString(ctx context.Context, category, name string) string {
	var cfg domain.ShopConfig
	err := m.db.WithContext(ctx).
		Where("type = ? AND name = ?", category, name).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ""
	}
	if err != nil {
		zap.L().Warn("failed to read setting",
			zap.String("category", category),
			zap.String("name", name),
			zap.Error(err))
		return ""
	}
	return cfg.Value
}

func (m *Manager) GetFloat64(ctx context.Context, category, name string) float64 {
	return cast.ToFloat64(m.GetString(ctx, category, name))
}

func (m *Manager) GetInt64(ctx context.Context, category, name string) int64 {
	return cast.ToInt64(m.GetString(ctx, category, name))
}

func (m *Manager) GetBool(ctx context.Context, category, name string) bool {
	return cast.ToBool(m.GetString(ctx, category, name))
}

// Set creates or overwrites a setting row.
func (m *Manager) Set(ctx context.Context, category, name, value string) error {
	var cfg domain.ShopConfig
	err := m.db.WithContext(ctx).
		Where("type = ? AND name = ?", category, name).
		First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return m.db.WithContext(ctx).Create(&domain.ShopConfig{
			ID:        common.UUIDint64(),
			Type:      category,
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
	case err != nil:
		return err
	}
	return m.db.WithContext(ctx).Model(&domain.ShopConfig{}).
		Where("id = ?", cfg.ID).
		Updates(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}).Error
}

// Currency returns the shop currency code, defaulting to inr.
func (m *Manager) Currency(ctx context.Context) string {
	if v := m.GetString(ctx, CategoryShop, KeyCurrency); v != "" {
		return v
	}
	return DefaultCurrency
}

// DeliveryCharge returns the fixed delivery fee in main currency units.
func (m *Manager) DeliveryCharge(ctx context.Context) float64 {
	if v := m.GetString(ctx, CategoryShop, KeyDeliveryCharge); v != "" {
		return cast.ToFloat64(v)
	}
	return DefaultDeliveryFee
}
