package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/petiverse/petiversebackend/config"
	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/logger"
	"github.com/petiverse/petiversebackend/middleware"
	"github.com/petiverse/petiversebackend/models"
	"github.com/petiverse/petiversebackend/routes"
	"github.com/petiverse/petiversebackend/storage"
	"github.com/petiverse/petiversebackend/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx := context.Background()

	store, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		zap.L().Fatal("failed to connect to MongoDB", zap.Error(err))
	}

	blobs, err := storage.New(ctx, cfg, store.DB)
	if err != nil {
		zap.L().Fatal("failed to open blob store", zap.String("backend", cfg.BlobBackend), zap.Error(err))
	}
	zap.L().Info("blob store ready", zap.String("backend", cfg.BlobBackend))

	deps := routes.Deps{
		Products:       database.NewCollection[models.Product](store, database.ProductsCollection),
		Categories:     database.NewCollection[models.Category](store, database.CategoriesCollection),
		Orders:         database.NewCollection[models.Order](store, database.OrdersCollection),
		Reviews:        database.NewCollection[models.Review](store, database.ReviewsCollection),
		Pets:           database.NewCollection[models.Pet](store, database.PetsCollection),
		Users:          database.NewCollection[models.User](store, database.UsersCollection),
		Blobs:          blobs,
		Validator:      utils.NewImageValidator(cfg.Uploads),
		DefaultLimit:   cfg.DefaultReadQueryLimit,
		MaxLimit:       cfg.ReadQueryMaxLimit,
		JWTSecret:      cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
	}

	//seeding admin user
	if cfg.AuthEnabled() {
		if err := utils.SeedAdminUser(ctx, deps.Users, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			zap.L().Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		zap.L().Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	r.MaxMultipartMemory = int64(cfg.Uploads.MaxSizeMB) << 20
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(apperrors.ErrorMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(apperrors.Recovery())

	routes.Register(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr), zap.Bool("auth", cfg.AuthEnabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}

	if closer, ok := blobs.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			zap.L().Error("failed to close blob store", zap.Error(err))
		}
	}
	if err := store.Close(context.Background()); err != nil {
		zap.L().Error("failed to close MongoDB", zap.Error(err))
	}
}

// corsMiddleware allows every origin when the list is empty, otherwise only
// the listed ones.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}

	allowedOrigins := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowedOrigins[origin] = true
	}
	cfg.AllowOriginFunc = func(origin string) bool {
		return allowedOrigins[origin]
	}
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
