package dto

import "github.com/petiverse/petiversebackend/models"

// ProductFields is everything a seller supplies about a product apart from
// its images.
type ProductFields struct {
	Name         string  `json:"name" binding:"required,notblank,min=2,max=100"`
	Description  string  `json:"description" binding:"required,max=1000"`
	Price        float64 `json:"price" binding:"required,gt=0,lt=100000"`
	Category     string  `json:"category" binding:"required,min=1,max=50"`
	Stock        int     `json:"stock" binding:"gte=0"`
	Availability string  `json:"availability" binding:"required,oneof='in stock' 'out of stock' 'preorder'"`
	SellerID     string  `json:"seller_id" binding:"required"`
}

// ProductDTO is the JSON body of POST /products and PUT /products/:id.
// Images may be empty but must be present.
type ProductDTO struct {
	ProductFields
	Images []string `json:"images" binding:"required"`
}

// ProductWithImageDTO is the "data" field of POST /products/with-image.
// Images come from the uploaded files.
type ProductWithImageDTO struct {
	ProductFields
}

func (f ProductFields) ToModel(images []string) models.Product {
	return models.Product{
		Name:         f.Name,
		Description:  f.Description,
		Price:        f.Price,
		Category:     f.Category,
		Stock:        f.Stock,
		Images:       images,
		Availability: models.Availability(f.Availability),
		SellerID:     f.SellerID,
	}
}
