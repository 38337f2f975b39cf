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

func Login(users database.Collection[models.User], secret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		user, err := users.FindOne(c.Request.Context(), bson.M{"email": email})
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				_ = c.Error(apperrors.Unauthorized("invalid credentials"))
				return
			}
			_ = c.Error(apperrors.Internal(err))
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			_ = c.Error(apperrors.Unauthorized("invalid credentials"))
			return
		}

		accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), secret, accessTTL)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": accessToken,
		})
	}
}
