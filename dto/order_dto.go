package dto

// CreateOrderDTO uses pointers where zero is a valid value but the field
// must still be sent.
type CreateOrderDTO struct {
	ProductIDs      []string `json:"product_ids" binding:"required"`
	UserID          string   `json:"user_id" binding:"required"`
	Quantity        []int    `json:"quantity" binding:"required"`
	TotalAmount     *float64 `json:"total_amount" binding:"required"`
	ShippingAddress string   `json:"shipping_address" binding:"required"`
	Status          string   `json:"status" binding:"required,oneof=pending shipped delivered canceled"`
}
