package controllers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/dto"
	"github.com/petiverse/petiversebackend/models"
	"github.com/petiverse/petiversebackend/search"
	"github.com/petiverse/petiversebackend/storage"
	"github.com/petiverse/petiversebackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func CreateProduct(products database.Collection[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		product := body.ToModel(body.Images)
		id, err := products.Insert(c.Request.Context(), &product)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Product added successfully!"})
	}
}

// GetProducts pages through the catalogue with skip/limit. Out of range
// values fall back to the defaults or are clamped to maxLimit.
func GetProducts(products database.Collection[models.Product], defaultLimit, maxLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip := utils.ParseIntDefault(c.Query("skip"), 0)
		limit := utils.ParseIntDefault(c.Query("limit"), defaultLimit)
		if skip < 0 {
			skip = 0
		}
		if limit < 1 {
			limit = defaultLimit
		}
		if limit > maxLimit {
			limit = maxLimit
		}

		items, err := products.Find(c.Request.Context(), bson.M{}, int64(skip), int64(limit))
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": items})
	}
}

// GetProduct returns the product together with the bytes of every image the
// blob store knows. References it does not know, such as external URLs, are
// left out of image_data.
func GetProduct(products database.Collection[models.Product], blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Product")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		product, err := products.FindByID(ctx, id)
		if err != nil {
			_ = c.Error(lookupError("Product", err))
			return
		}

		detail := models.ProductDetail{Product: *product, ImageData: make([]models.ProductImage, 0, len(product.Images))}
		for _, handle := range product.Images {
			data, err := blobs.Get(ctx, handle)
			if err != nil {
				if errors.Is(err, storage.ErrBlobNotFound) || errors.Is(err, storage.ErrInvalidHandle) {
					continue
				}
				_ = c.Error(apperrors.Internal(fmt.Errorf("load image %s: %w", handle, err)))
				return
			}
			detail.ImageData = append(detail.ImageData, models.ProductImage{ID: handle, Image: data})
		}

		c.JSON(http.StatusOK, gin.H{"product": detail})
	}
}

// UpdateProduct replaces every field of the product.
func UpdateProduct(products database.Collection[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Product")
		if !ok {
			return
		}

		var body dto.ProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		product := body.ToModel(body.Images)
		matched, err := products.UpdateByID(c.Request.Context(), id, &product)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}
		if matched == 0 {
			_ = c.Error(apperrors.NotFound("Product"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully!"})
	}
}

// DeleteProduct removes the document, then its stored images. Image cleanup
// failures are logged only.
func DeleteProduct(products database.Collection[models.Product], blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", "Product")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		product, err := products.FindByID(ctx, id)
		if err != nil {
			_ = c.Error(lookupError("Product", err))
			return
		}

		deleted, err := products.DeleteByID(ctx, id)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}
		if deleted == 0 {
			_ = c.Error(apperrors.NotFound("Product"))
			return
		}

		for _, handle := range product.Images {
			err := blobs.Delete(ctx, handle)
			if err == nil || errors.Is(err, storage.ErrBlobNotFound) || errors.Is(err, storage.ErrInvalidHandle) {
				continue
			}
			zap.L().Warn("product image cleanup failed",
				zap.String("product_id", id.Hex()),
				zap.String("handle", handle),
				zap.Error(err),
			)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
	}
}

// CreateProductWithImage takes a multipart form: the product JSON in "data"
// and the files in "images". Files are validated before anything is stored;
// blobs already written are removed again if a later step fails.
func CreateProductWithImage(products database.Collection[models.Product], blobs storage.BlobStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jsonData := c.PostForm("data")
		if strings.TrimSpace(jsonData) == "" {
			_ = c.Error(apperrors.Field("data", "field required"))
			return
		}

		var body dto.ProductWithImageDTO
		if err := binding.JSON.BindBody([]byte(jsonData), &body); err != nil {
			_ = c.Error(apperrors.Validation(err))
			return
		}

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files = form.File["images"]
		}
		if limit := v.MaxFiles(); limit > 0 && len(files) > limit {
			_ = c.Error(apperrors.Field("images", fmt.Sprintf("at most %d files allowed", limit)))
			return
		}

		contentTypes := make([]string, len(files))
		for i, fh := range files {
			ct, err := v.ValidateFile(fh)
			if err != nil {
				_ = c.Error(apperrors.Field("images", fmt.Sprintf("%s: %v", fh.Filename, err)))
				return
			}
			contentTypes[i] = ct
		}

		handles := make([]string, 0, len(files))
		for i, fh := range files {
			data, err := utils.ReadFile(fh)
			if err == nil {
				var handle string
				handle, err = blobs.Put(ctx, fh.Filename, contentTypes[i], data)
				if err == nil {
					handles = append(handles, handle)
					continue
				}
			}
			discardBlobs(c, blobs, handles)
			_ = c.Error(apperrors.Internal(fmt.Errorf("store %s: %w", fh.Filename, err)))
			return
		}

		product := body.ToModel(handles)
		id, err := products.Insert(ctx, &product)
		if err != nil {
			discardBlobs(c, blobs, handles)
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Product added successfully!"})
	}
}

func SearchProducts(products database.Collection[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := search.ParseProductQuery(c.Request.URL.Query())
		if err != nil {
			_ = c.Error(err)
			return
		}

		items, err := products.Find(c.Request.Context(), q.Filter(), 0, search.ResultCap)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": items})
	}
}

// GetImage serves one stored blob. The route uses a wildcard because bucket
// handles contain slashes.
func GetImage(blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := strings.TrimPrefix(c.Param("id"), "/")
		if handle == "" {
			_ = c.Error(apperrors.InvalidID("Image", nil))
			return
		}

		data, err := blobs.Get(c.Request.Context(), handle)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBlobNotFound):
				_ = c.Error(apperrors.NotFound("Image"))
			case errors.Is(err, storage.ErrInvalidHandle):
				_ = c.Error(apperrors.InvalidID("Image", err))
			default:
				_ = c.Error(apperrors.Internal(err))
			}
			return
		}

		c.Data(http.StatusOK, http.DetectContentType(data), data)
	}
}

// discardBlobs undoes a partial upload. The request has already failed, so
// cleanup errors are only logged.
func discardBlobs(c *gin.Context, blobs storage.BlobStore, handles []string) {
	if len(handles) == 0 {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	if err := storage.DeleteAll(ctx, blobs, handles); err != nil {
		zap.L().Error("failed to remove staged images",
			zap.String("request_id", c.GetString("request_id")),
			zap.Strings("handles", handles),
			zap.Error(err),
		)
	}
}
