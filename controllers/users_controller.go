package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/dto"
	"github.com/petiverse/petiversebackend/models"
	"github.com/petiverse/petiversebackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /users
func RegisterUser(users database.Collection[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}
		ctx := c.Request.Context()

		email := strings.ToLower(strings.TrimSpace(body.Email))

		_, err := users.FindOne(ctx, bson.M{"email": email})
		if err == nil {
			_ = c.Error(apperrors.New(http.StatusConflict, "email already registered", nil))
			return
		}
		if !errors.Is(err, database.ErrNotFound) {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		user := models.User{
			Username:     strings.TrimSpace(body.Username),
			Email:        email,
			PasswordHash: hash,
			Role:         models.Role(body.Role),
			CreatedAt:    time.Now().UTC(),
		}

		id, err := users.Insert(ctx, &user)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "User registered successfully!"})
	}
}
