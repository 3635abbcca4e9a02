package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var cartJSON = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrCartItemMissing is returned when a quantity update targets a product
	// that was never added to the cart. SetQuantity never creates the entry.
	ErrCartItemMissing = errors.New("cart item missing")

	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// CartData maps product id -> size label -> quantity. It is stored on the
// user row as a single JSON column and always written back whole.
type CartData map[string]map[string]int

// NewCartData returns an empty, non-nil cart.
func NewCartData() CartData {
	return CartData{}
}

// Add increments the quantity at [productID][size] by one, initializing
// intermediate levels as needed. There is no upper bound on quantity.
func (c CartData) Add(productID, size string) {
	sizes, ok := c[productID]
	if !ok {
		sizes = map[string]int{}
		c[productID] = sizes
	}
	sizes[size]++
}

// SetQuantity overwrites the quantity at [productID][size]. The product
// entry must already exist.
func (c CartData) SetQuantity(productID, size string, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	sizes, ok := c[productID]
	if !ok {
		return ErrCartItemMissing
	}
	sizes[size] = quantity
	return nil
}

// Quantity returns the stored quantity, zero when absent.
func (c CartData) Quantity(productID, size string) int {
	return c[productID][size]
}

func (c CartData) Value() (driver.Value, error) {
	if c == nil {
		c = CartData{}
	}
	b, err := cartJSON.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CartData) Scan(value interface{}) error {
	if value == nil {
		*c = CartData{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported cart column type %T", value)
	}
	if len(data) == 0 {
		*c = CartData{}
		return nil
	}
	return cartJSON.Unmarshal(data, c)
}
