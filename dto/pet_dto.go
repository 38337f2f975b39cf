package dto

type CreatePetDTO struct {
	Name        string   `json:"name" binding:"required"`
	Age         *int     `json:"age" binding:"required"`
	Breed       string   `json:"breed" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description *string  `json:"description"`
	Images      []string `json:"images" binding:"required"`
	OwnerID     string   `json:"owner_id" binding:"required"`
}
