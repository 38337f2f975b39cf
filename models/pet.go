package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Pet struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Age         int           `bson:"age" json:"age"`
	Breed       string        `bson:"breed" json:"breed"`
	Category    string        `bson:"category" json:"category"`
	Description *string       `bson:"description" json:"description"`
	Images      []string      `bson:"images" json:"images"`
	OwnerID     string        `bson:"owner_id" json:"owner_id"`
}
