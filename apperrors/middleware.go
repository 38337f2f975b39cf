package apperrors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// ConfigureValidator makes gin's validator report json tag names
// ("seller_id") instead of Go field names ("SellerID") and adds the
// notblank rule used by the DTOs.
func ConfigureValidator() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
// Anything that is not an *Error is logged and surfaced as a 500.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *Error
		if !errors.As(err, &appErr) {
			appErr = Internal(err)
		}

		if appErr.Code >= 500 {
			zap.L().Error("request failed",
				zap.String("request_id", c.GetString("request_id")),
				zap.String("path", c.FullPath()),
				zap.Error(appErr.Err),
			)
		}

		c.AbortWithStatusJSON(appErr.Code, appErr.Body())
	}
}

// Recovery turns a panic into a 500 that ErrorMiddleware renders, so the
// body keeps the usual {"detail": ...} shape. It must run inside
// ErrorMiddleware.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		_ = c.Error(Internal(fmt.Errorf("panic: %v", recovered)))
		c.Abort()
	})
}

// NoRoute answers unknown paths with a JSON 404.
func NoRoute(c *gin.Context) {
	_ = c.Error(NotFound("Route"))
}
