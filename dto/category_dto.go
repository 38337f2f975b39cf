package dto

// CategoryDTO is the body of both create and update.
type CategoryDTO struct {
	Name        string  `json:"name" binding:"required,notblank"`
	Description *string `json:"description"`
}
