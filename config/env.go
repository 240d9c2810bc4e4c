package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	MongoURI       string
	MongoDB        string
	RedisURL       string
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	JWTExpiry      string
	UploadDir      string
	MaxUploadSize  int64
	MaxUploadFiles int
	GeminiAPIKey   string
	GeminiModel    string
	OriginURL      string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5 * 1024 * 1024
	}

	maxUploadFiles, _ := strconv.Atoi(os.Getenv("MAX_UPLOAD_FILES"))
	if maxUploadFiles == 0 {
		maxUploadFiles = 5
	}

	AppConfig = &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("APP_PORT", getEnv("PORT", "5000")),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "sneaker_shop"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpiry:      getEnv("JWT_EXPIRY", "24h"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize:  maxUploadSize,
		MaxUploadFiles: maxUploadFiles,
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OriginURL:      os.Getenv("ORIGIN_URL"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
