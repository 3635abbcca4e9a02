package app

import (
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/internal/settings"
	"github.com/trendora/storefront/pkg/common"
)

type settingSchema struct {
	Category string
	Name     string
	Default  string
	Remark   string
}

var defaultSettings = []settingSchema{
	{settings.CategoryShop, settings.KeyCurrency, settings.DefaultCurrency, "Currency code used for gateway charges"},
	{settings.CategoryShop, settings.KeyDeliveryCharge, cast.ToString(settings.DefaultDeliveryFee), "Fixed delivery charge in main currency units"},
}

// checkSettings initializes missing settings rows with their defaults.
func (a *Application) checkSettings() {
	for _, schema := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.ShopConfig{}).
			Where("type = ? and name = ?", schema.Category, schema.Name).
			Count(&count)

		if count == 0 {
			err := a.gormDB.Create(&domain.ShopConfig{
				ID:        common.UUIDint64(),
				Type:      schema.Category,
				Name:      schema.Name,
				Value:     schema.Default,
				Remark:    schema.Remark,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}).Error
			if err != nil {
				zap.L().Error("failed to initialize setting",
					zap.String("category", schema.Category),
					zap.String("name", schema.Name),
					zap.Error(err))
				continue
			}
			zap.L().Info("initialized setting",
				zap.String("key", schema.Category+"."+schema.Name),
				zap.String("default", schema.Default))
		}
	}
}
