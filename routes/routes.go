// Package routes wires every endpoint onto a gin engine.
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/controllers"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/middleware"
	"github.com/petiverse/petiversebackend/models"
	"github.com/petiverse/petiversebackend/storage"
	"github.com/petiverse/petiversebackend/utils"
)

// Deps is everything the handlers need. main builds it from the live
// store; tests build it from in-memory doubles.
type Deps struct {
	Products   database.Collection[models.Product]
	Categories database.Collection[models.Category]
	Orders     database.Collection[models.Order]
	Reviews    database.Collection[models.Review]
	Pets       database.Collection[models.Pet]
	Users      database.Collection[models.User]

	Blobs     storage.BlobStore
	Validator *utils.FileValidator

	DefaultLimit int
	MaxLimit     int

	// JWTSecret turns on bearer auth for write routes when non-empty.
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// Register adds the routes to r. Middleware such as error rendering is
// the caller's job.
func Register(r *gin.Engine, d Deps) {
	apperrors.ConfigureValidator()
	r.NoRoute(apperrors.NoRoute)

	// write wraps a mutating handler with the auth guard when auth is on.
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if d.JWTSecret == "" {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.AuthMiddleware(d.JWTSecret), h}
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if d.JWTSecret != "" {
		r.POST("/auth/login", controllers.Login(d.Users, d.JWTSecret, d.AccessTokenTTL))
	}
	r.POST("/users", controllers.RegisterUser(d.Users))

	r.GET("/products", controllers.GetProducts(d.Products, d.DefaultLimit, d.MaxLimit))
	r.GET("/products/:id", controllers.GetProduct(d.Products, d.Blobs))
	r.POST("/products", write(controllers.CreateProduct(d.Products))...)
	r.POST("/products/with-image", write(controllers.CreateProductWithImage(d.Products, d.Blobs, d.Validator))...)
	r.PUT("/products/:id", write(controllers.UpdateProduct(d.Products))...)
	r.DELETE("/products/:id", write(controllers.DeleteProduct(d.Products, d.Blobs))...)
	r.GET("/search/products", controllers.SearchProducts(d.Products))
	r.GET("/images/*id", controllers.GetImage(d.Blobs))

	r.POST("/orders", write(controllers.PlaceOrder(d.Orders))...)
	r.GET("/orders/:id", controllers.GetOrder(d.Orders))
	r.DELETE("/orders/:id", write(controllers.CancelOrder(d.Orders))...)

	r.POST("/categories", write(controllers.AddCategory(d.Categories))...)
	r.GET("/categories", controllers.GetCategories(d.Categories))
	r.GET("/categories/:id", controllers.GetCategory(d.Categories))
	r.PUT("/categories/:id", write(controllers.UpdateCategory(d.Categories))...)
	r.DELETE("/categories/:id", write(controllers.DeleteCategory(d.Categories))...)

	r.POST("/reviews", write(controllers.AddReview(d.Reviews))...)
	r.GET("/reviews/:product_id", controllers.GetReviews(d.Reviews))

	r.GET("/pets", controllers.GetPets(d.Pets))
	r.POST("/pets", write(controllers.AddPet(d.Pets))...)
}
