package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment. It is built
// once at startup and handed to component constructors; nothing else touches
// process env after Load returns.
type Config struct {
	ServerAddress string

	MongoURI string
	MongoDB  string

	JWTSecret     string
	JWTExpiration time.Duration

	SendGridAPIKey string
	MailFromName   string
	MailFromEmail  string
	SupportEmail   string

	AWSRegion          string
	S3Bucket           string
	MaxUploadSizeMB    int64
	MaxImagesPerUpload int

	OTPExpiry time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment")
	}

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "vivahmilan"),

		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration: 10 * 24 * time.Hour,

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "VivahMilan"),
		MailFromEmail:  getEnv("MAIL_FROM_EMAIL", "no-reply@vivahmilan.in"),
		SupportEmail:   getEnv("SUPPORT_EMAIL", "support@vivahmilan.in"),

		AWSRegion:          getEnv("AWS_REGION", "ap-south-1"),
		S3Bucket:           getEnv("S3_BUCKET", "vivahmilan-uploads"),
		MaxUploadSizeMB:    getEnvInt64("MAX_UPLOAD_SIZE_MB", 10),
		MaxImagesPerUpload: 3,

		OTPExpiry: 15 * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
