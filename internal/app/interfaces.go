package app

import (
	"gorm.io/gorm"

	"github.com/trendora/storefront/config"
	"github.com/trendora/storefront/internal/settings"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides runtime settings access
type SettingsProvider interface {
	Settings() *settings.Manager
}
