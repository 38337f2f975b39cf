package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Availability string

const (
	AvailabilityInStock    Availability = "in stock"
	AvailabilityOutOfStock Availability = "out of stock"
	AvailabilityPreorder   Availability = "preorder"
)

// Product is a listing in the marketplace. Images holds blob handles or
// plain references supplied by the seller.
type Product struct {
	Id           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Description  string        `bson:"description" json:"description"`
	Price        float64       `bson:"price" json:"price"`
	Category     string        `bson:"category" json:"category"`
	Stock        int           `bson:"stock" json:"stock"`
	Images       []string      `bson:"images" json:"images"`
	Availability Availability  `bson:"availability" json:"availability"`
	SellerID     string        `bson:"seller_id" json:"seller_id"`
}

// ProductImage carries one resolved blob in a product-by-id response.
type ProductImage struct {
	ID    string `json:"id"`
	Image []byte `json:"image"`
}

// ProductDetail is a Product plus the bytes of every image the blob store
// could resolve.
type ProductDetail struct {
	Product
	ImageData []ProductImage `json:"image_data"`
}
