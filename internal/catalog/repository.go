package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/domain"
)

// ProductRepository handles database operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// DeleteByID removes a product; deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// GormProductRepository is the GORM implementation of ProductRepository.
type GormProductRepository struct {
	DB *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{DB: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.DB.WithContext(ctx).Delete(&domain.Product{}, id).Error
}
