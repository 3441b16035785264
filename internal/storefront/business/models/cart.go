package models

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal prices the item with its default variant.
func (i CartItem) LineTotal() int64 {
	return i.Product.Price() * int64(i.Quantity)
}

type Quote struct {
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    int64      `json:"total_price"`
	Missing       []int64    `json:"missing,omitempty"`
}
