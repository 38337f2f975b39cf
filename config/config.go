package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Blob backends understood by storage.New.
const (
	BlobBackendGridFS = "gridfs"
	BlobBackendS3     = "s3"
	BlobBackendGCS    = "gcs"
)

// Config holds every environment setting the service reads at startup.
type Config struct {
	Port string
	Env  string

	MongoURI     string
	DatabaseName string

	BlobBackend string
	S3          S3Config
	GCS         GCSConfig

	AllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For. Empty trusts none, so the
	// client IP is the socket peer.
	TrustedProxies []string

	JWTSecret      string
	AccessTokenTTL time.Duration
	AdminEmail     string
	AdminPassword  string

	Uploads UploadConfig

	ReadQueryMaxLimit     int
	DefaultReadQueryLimit int

	// RateLimitPerMinute of zero turns rate limiting off.
	RateLimitPerMinute int
	RateLimitBurst     int
}

// S3Config points at any S3-compatible bucket (AWS, R2, LocalStack).
type S3Config struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
}

type UploadConfig struct {
	MaxSizeMB         int
	MaxProductImages  int
	AllowedExtensions []string
	AllowedMimeTypes  []string
}

// AuthEnabled reports whether write routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (if present) and the process environment into a Config
// and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		Env:          getenv("APP_ENV", "development"),
		MongoURI:     getenv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getenv("DATABASE_NAME", "petiverse"),
		BlobBackend:  strings.ToLower(getenv("BLOB_BACKEND", BlobBackendGridFS)),
		S3: S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          getenv("S3_REGION", "auto"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		GCS: GCSConfig{
			Bucket:          os.Getenv("GCS_BUCKET"),
			CredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),
		},
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS"), false),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES"), false),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	ttlMinutes, err := getint("ACCESS_TOKEN_TTL_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = time.Duration(ttlMinutes) * time.Minute

	if cfg.Uploads.MaxSizeMB, err = getint("MAX_UPLOAD_SIZE_MB", 5); err != nil {
		return nil, err
	}
	if cfg.Uploads.MaxProductImages, err = getint("MAX_PRODUCT_IMAGES", 10); err != nil {
		return nil, err
	}
	cfg.Uploads.AllowedExtensions = splitList(getenv("ALLOWED_FILE_EXTENSIONS", ".jpg,.jpeg,.png,.webp,.gif"), true)
	cfg.Uploads.AllowedMimeTypes = splitList(getenv("ALLOWED_FILE_MIME_TYPES", "image/jpeg,image/png,image/webp,image/gif"), true)

	if cfg.ReadQueryMaxLimit, err = getint("READ_QUERY_MAX_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.DefaultReadQueryLimit, err = getint("DEFAULT_READ_QUERY_LIMIT", 10); err != nil {
		return nil, err
	}

	if cfg.RateLimitPerMinute, err = getint("RATE_LIMIT_PER_MINUTE", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getint("RATE_LIMIT_BURST", 50); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.BlobBackend {
	case BlobBackendGridFS:
	case BlobBackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when BLOB_BACKEND=s3")
		}
	case BlobBackendGCS:
		if c.GCS.Bucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when BLOB_BACKEND=gcs")
		}
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q (want gridfs, s3 or gcs)", c.BlobBackend)
	}
	if c.DatabaseName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}
	if c.Uploads.MaxSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive")
	}
	if c.ReadQueryMaxLimit <= 0 || c.DefaultReadQueryLimit <= 0 {
		return fmt.Errorf("read query limits must be positive")
	}
	if c.DefaultReadQueryLimit > c.ReadQueryMaxLimit {
		c.DefaultReadQueryLimit = c.ReadQueryMaxLimit
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(raw string, lower bool) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if lower {
			item = strings.ToLower(item)
		}
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
