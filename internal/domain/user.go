package domain

import "time"

// User is a registered shopper. CartData defaults to an empty map and must
// never be stored as NULL; downstream cart code indexes into it directly.
type User struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email" form:"email"`
	Password  string    `json:"-" form:"-"`
	CartData  CartData  `gorm:"type:text" json:"cart_data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "shop_user"
}
