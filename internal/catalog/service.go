package catalog

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/audit"
	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/internal/imagestore"
	"github.com/trendora/storefront/pkg/common"
)

var sizesJSON = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrMalformedSizes  = errors.New("sizes must be a JSON list of size labels")
	ErrBadPrice        = errors.New("price must be numeric")
	ErrProductNotFound = errors.New("product not found")
)

// ImageUploader fans product images out to the hosting service.
type ImageUploader interface {
	UploadAll(ctx context.Context, files []imagestore.File) ([]string, error)
}

// AddProductInput carries the multipart form fields as received. Price,
// bestseller and sizes arrive serialized and are coerced here.
type AddProductInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	SubCategory string
	Sizes       string
	Bestseller  string
	Images      []imagestore.File
}

// Service manages catalog entries and their hosted images.
type Service struct {
	products ProductRepository
	uploader ImageUploader
	audit    audit.Recorder
}

func NewService(products ProductRepository, uploader ImageUploader, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop()
	}
	return &Service{products: products, uploader: uploader, audit: rec}
}

// AddProduct uploads all present images concurrently, parses the serialized
// fields and persists the product. Any upload failure aborts the operation
// and leaves no product row.
func (s *Service) AddProduct(ctx context.Context, in AddProductInput) (*domain.Product, error) {
	price, err := cast.ToFloat64E(in.Price)
	if err != nil {
		return nil, ErrBadPrice
	}

	var sizes domain.StringList
	if err := sizesJSON.UnmarshalFromString(in.Sizes, &sizes); err != nil {
		return nil, ErrMalformedSizes
	}

	urls, err := s.uploader.UploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          common.UUIDint64(),
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Sizes:       sizes,
		Images:      urls,
		Bestseller:  in.Bestseller == "true",
		CreatedAt:   time.Now(),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	zap.L().Info("product added",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("images", len(urls)))
	s.audit.Record(ctx, "product_add", product.Name)
	return product, nil
}

// ListProducts returns the whole catalog, unfiltered and unpaged.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// GetProduct returns a single product or ErrProductNotFound.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// RemoveProduct deletes by id. Removing a missing id succeeds.
func (s *Service) RemoveProduct(ctx context.Context, id int64) error {
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "product_remove", cast.ToString(id))
	return nil
}
