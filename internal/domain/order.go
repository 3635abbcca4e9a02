package domain

import (
	"database/sql/driver"
	"time"
)

// Payment methods accepted at order placement.
const (
	PaymentMethodCOD      = "COD"
	PaymentMethodCheckout = "checkout"
	PaymentMethodCollect  = "collect"
)

// OrderItem is a point-in-time snapshot of a purchased product. Later price
// changes or product deletion never affect existing orders.
type OrderItem struct {
	ProductID int64   `json:"product_id,string"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderItems is the JSON-encoded snapshot column.
type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		i = OrderItems{}
	}
	b, err := columnJSON.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *OrderItems) Scan(value interface{}) error {
	return scanJSONColumn(value, i, func() { *i = OrderItems{} })
}

// Order is a placed order. Payment starts false for every method and is set
// true only by a verification step; COD orders never transition it.
type Order struct {
	ID            int64      `json:"id,string" form:"id"`
	UserID        int64      `gorm:"index" json:"user_id,string" form:"user_id"`
	Items         OrderItems `gorm:"type:text" json:"items"`
	Amount        float64    `json:"amount" form:"amount"`
	Address       Address    `gorm:"type:text" json:"address"`
	Status        string     `gorm:"size:32" json:"status" form:"status"`
	PaymentMethod string     `gorm:"size:16" json:"payment_method" form:"payment_method"`
	Payment       bool       `json:"payment" form:"payment"`
	Receipt       string     `gorm:"index;size:64" json:"receipt" form:"receipt"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "shop_order"
}
