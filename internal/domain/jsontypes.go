package domain

import (
	"database/sql/driver"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var columnJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// StringList is a JSON-encoded ordered list column (sizes, image URLs).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := columnJSON.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSONColumn(value, l, func() { *l = StringList{} })
}

// Address is an opaque structured shipping address supplied by the caller
// and stored verbatim on the order.
type Address map[string]interface{}

func (a Address) Value() (driver.Value, error) {
	if a == nil {
		a = Address{}
	}
	b, err := columnJSON.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Address) Scan(value interface{}) error {
	return scanJSONColumn(value, a, func() { *a = Address{} })
}

func scanJSONColumn(value interface{}, dst interface{}, reset func()) error {
	if value == nil {
		reset()
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
	if len(data) == 0 {
		reset()
		return nil
	}
	return columnJSON.Unmarshal(data, dst)
}
