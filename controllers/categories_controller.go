package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/dto"
	"github.com/petiverse/petiversebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func AddCategory(categories database.Collection[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		doc := models.Category{
			Name:        strings.TrimSpace(body.Name),
			Description: body.Description,
		}

		id, err := categories.Insert(c.Request.Context(), &doc)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Category added successfully!"})
	}
}

func GetCategories(categories database.Collection[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := categories.Find(c.Request.Context(), bson.M{}, 0, listCap)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"categories": items})
	}
}

func GetCategory(categories database.Collection[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Category")
		if !ok {
			return
		}

		cat, err := categories.FindByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(lookupError("Category", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"category": cat})
	}
}

func UpdateCategory(categories database.Collection[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Category")
		if !ok {
			return
		}

		var body dto.CategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		doc := models.Category{
			Name:        strings.TrimSpace(body.Name),
			Description: body.Description,
		}

		matched, err := categories.UpdateByID(c.Request.Context(), id, &doc)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}
		if matched == 0 {
			_ = c.Error(apperrors.NotFound("Category"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully!"})
	}
}

// DeleteCategory does not look at products that still name the category.
func DeleteCategory(categories database.Collection[models.Category]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Category")
		if !ok {
			return
		}

		deleted, err := categories.DeleteByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}
		if deleted == 0 {
			_ = c.Error(apperrors.NotFound("Category"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully!"})
	}
}
