package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/dto"
	"github.com/petiverse/petiversebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func AddReview(reviews database.Collection[models.Review]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateReviewDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		createdAt := time.Now().UTC()
		if body.CreatedAt != nil {
			createdAt = body.CreatedAt.UTC()
		}

		review := models.Review{
			ProductID: body.ProductID,
			UserID:    body.UserID,
			Rating:    *body.Rating,
			Comment:   body.Comment,
			CreatedAt: createdAt,
		}

		id, err := reviews.Insert(c.Request.Context(), &review)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Review added successfully!"})
	}
}

// GetReviews lists the reviews of one product. An unknown product yields
// an empty list.
func GetReviews(reviews database.Collection[models.Review]) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{"product_id": c.Param("product_id")}

		items, err := reviews.Find(c.Request.Context(), filter, 0, listCap)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"reviews": items})
	}
}
