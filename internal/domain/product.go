package domain

import "time"

// Product is a catalog entry. Products are immutable after creation except
// for deletion; orders snapshot the fields they need.
type Product struct {
	ID          int64      `json:"id,string" form:"id"`
	Name        string     `gorm:"index" json:"name" form:"name"`
	Description string     `json:"description" form:"description"`
	Price       float64    `json:"price" form:"price"`
	Category    string     `gorm:"size:64" json:"category" form:"category"`
	SubCategory string     `gorm:"size:64" json:"sub_category" form:"sub_category"`
	Sizes       StringList `gorm:"type:text" json:"sizes"`
	Images      StringList `gorm:"type:text" json:"images"`
	Bestseller  bool       `json:"bestseller" form:"bestseller"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "shop_product"
}
