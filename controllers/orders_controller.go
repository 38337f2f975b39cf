package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/dto"
	"github.com/petiverse/petiversebackend/models"
)

// PlaceOrder stores the order as sent. Product ids are not checked against
// the catalogue and no stock is reserved.
func PlaceOrder(orders database.Collection[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateOrderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}
		if len(body.Quantity) != len(body.ProductIDs) {
			_ = c.Error(apperrors.Field("quantity", "must have one entry per product id"))
			return
		}

		order := models.Order{
			ProductIDs:      body.ProductIDs,
			UserID:          body.UserID,
			Quantity:        body.Quantity,
			TotalAmount:     *body.TotalAmount,
			ShippingAddress: body.ShippingAddress,
			Status:          models.OrderStatus(body.Status),
		}

		id, err := orders.Insert(c.Request.Context(), &order)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Order placed successfully!"})
	}
}

func GetOrder(orders database.Collection[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Order")
		if !ok {
			return
		}

		order, err := orders.FindByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(lookupError("Order", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// CancelOrder removes the order document.
func CancelOrder(orders database.Collection[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Order")
		if !ok {
			return
		}

		deleted, err := orders.DeleteByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}
		if deleted == 0 {
			_ = c.Error(apperrors.NotFound("Order"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order canceled successfully!"})
	}
}
