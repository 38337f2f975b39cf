package dto

import "time"

type CreateReviewDTO struct {
	ProductID string     `json:"product_id" binding:"required"`
	UserID    string     `json:"user_id" binding:"required"`
	Rating    *int       `json:"rating" binding:"required"`
	Comment   *string    `json:"comment"`
	CreatedAt *time.Time `json:"created_at"`
}
