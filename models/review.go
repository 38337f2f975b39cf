package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Review struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string        `bson:"product_id" json:"product_id"`
	UserID    string        `bson:"user_id" json:"user_id"`
	Rating    int           `bson:"rating" json:"rating"`
	Comment   *string       `bson:"comment" json:"comment"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Post is a community post with attached images.
type Post struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Content   string        `bson:"content" json:"content"`
	Images    []string      `bson:"images" json:"images"`
	UserID    string        `bson:"user_id" json:"user_id"`
	CreatedAt *time.Time    `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
