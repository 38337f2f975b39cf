package models

import "go.mongodb.org/mongo-driver/v2/bson"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// Order lines are parallel lists: Quantity[i] belongs to ProductIDs[i].
type Order struct {
	Id              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductIDs      []string      `bson:"product_ids" json:"product_ids"`
	UserID          string        `bson:"user_id" json:"user_id"`
	Quantity        []int         `bson:"quantity" json:"quantity"`
	TotalAmount     float64       `bson:"total_amount" json:"total_amount"`
	ShippingAddress string        `bson:"shipping_address" json:"shipping_address"`
	Status          OrderStatus   `bson:"status" json:"status"`
}

// CartItem is a pending line in a user's cart.
type CartItem struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string        `bson:"product_id" json:"product_id"`
	UserID    string        `bson:"user_id" json:"user_id"`
	Quantity  int           `bson:"quantity" json:"quantity"`
}
