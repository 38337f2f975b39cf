package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/dto"
	"github.com/petiverse/petiversebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func GetPets(pets database.Collection[models.Pet]) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := pets.Find(c.Request.Context(), bson.M{}, 0, listCap)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"pets": items})
	}
}

func AddPet(pets database.Collection[models.Pet]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreatePetDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		pet := models.Pet{
			Name:        body.Name,
			Age:         *body.Age,
			Breed:       body.Breed,
			Category:    body.Category,
			Description: body.Description,
			Images:      body.Images,
			OwnerID:     body.OwnerID,
		}

		id, err := pets.Insert(c.Request.Context(), &pet)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Pet added successfully!"})
	}
}
