package domain

var Tables = []interface{}{
	// System
	&ShopConfig{},
	&ShopOprLog{},
	// Shop
	&User{},
	&Product{},
	&Order{},
}
