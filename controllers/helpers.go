package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// listCap bounds the unpaged list endpoints.
const listCap = 100

// pathID parses the named path parameter as an ObjectID. On failure it
// records a 400 and returns false.
func pathID(c *gin.Context, param, resource string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(param))
	if err != nil {
		_ = c.Error(apperrors.InvalidID(resource, err))
		return bson.NilObjectID, false
	}
	return id, true
}

// lookupError maps a gateway read failure to a 404 or a 500.
func lookupError(resource string, err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperrors.NotFound(resource)
	}
	return apperrors.Internal(err)
}
