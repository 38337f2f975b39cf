package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/config"
	"github.com/petiverse/petiversebackend/database/databasetest"
	"github.com/petiverse/petiversebackend/models"
	"github.com/petiverse/petiversebackend/routes"
	"github.com/petiverse/petiversebackend/storage/storagetest"
	"github.com/petiverse/petiversebackend/utils"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

const testSecret = "test-secret"

type harness struct {
	products   *databasetest.Memory[models.Product]
	categories *databasetest.Memory[models.Category]
	orders     *databasetest.Memory[models.Order]
	reviews    *databasetest.Memory[models.Review]
	pets       *databasetest.Memory[models.Pet]
	users      *databasetest.Memory[models.User]
	blobs      *storagetest.Memory
	router     *gin.Engine
}

func newHarness(t *testing.T, secret string) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperrors.ConfigureValidator()

	h := &harness{
		products:   databasetest.New[models.Product](),
		categories: databasetest.New[models.Category](),
		orders:     databasetest.New[models.Order](),
		reviews:    databasetest.New[models.Review](),
		pets:       databasetest.New[models.Pet](),
		users:      databasetest.New[models.User](),
		blobs:      storagetest.New(),
	}

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	routes.Register(r, routes.Deps{
		Products:   h.products,
		Categories: h.categories,
		Orders:     h.orders,
		Reviews:    h.reviews,
		Pets:       h.pets,
		Users:      h.users,
		Blobs:      h.blobs,
		Validator: utils.NewImageValidator(config.UploadConfig{
			MaxSizeMB:         1,
			MaxProductImages:  3,
			AllowedExtensions: []string{".png", ".jpg"},
			AllowedMimeTypes:  []string{"image/png", "image/jpeg"},
		}),
		DefaultLimit:   10,
		MaxLimit:       100,
		JWTSecret:      secret,
		AccessTokenTTL: time.Minute,
	})
	h.router = r
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

type upload struct {
	name string
	data []byte
}

// doMultipart posts data as the "data" field and files as "images".
func (h *harness) doMultipart(t *testing.T, path, data string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != "" {
		require.NoError(t, mw.WriteField("data", data))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// detailFields collects the field names of a 422 body.
func detailFields(t *testing.T, resp map[string]any) []string {
	t.Helper()
	entries, ok := resp["detail"].([]any)
	require.True(t, ok, "detail is not a list: %v", resp["detail"])
	fields := make([]string, 0, len(entries))
	for _, e := range entries {
		fields = append(fields, e.(map[string]any)["field"].(string))
	}
	return fields
}

func bella() map[string]any {
	return map[string]any{
		"name":         "Bella",
		"description":  "Friendly golden retriever",
		"price":        50,
		"category":     "dog",
		"stock":        3,
		"availability": "in stock",
		"images":       []string{},
		"seller_id":    "abc",
	}
}
