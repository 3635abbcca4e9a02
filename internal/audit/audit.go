package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/pkg/common"
)

// Recorder appends admin operation rows. Recording is best-effort and never
// fails the surrounding request.
type Recorder interface {
	Record(ctx context.Context, action, desc string)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, string, string) {}

// Nop returns a recorder that drops everything.
func Nop() Recorder {
	return nopRecorder{}
}

// GormRecorder writes operation rows to the shop_opr_log table.
type GormRecorder struct {
	DB *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{DB: db}
}

func (r *GormRecorder) Record(ctx context.Context, action, desc string) {
	err := r.DB.WithContext(ctx).Create(&domain.ShopOprLog{
		ID:        common.UUIDint64(),
		OprName:   "admin",
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}).Error
	if err != nil {
		zap.L().Warn("failed to write opr log",
			zap.String("action", action),
			zap.Error(err))
	}
}
