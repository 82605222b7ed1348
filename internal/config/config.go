package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// OpenAI
	OpenAIAPIKey        string
	Model               string
	ConfidenceThreshold float64
	// Facebook Messenger
	PageAccessToken string
	VerifyToken     string
	AppSecret       string
	// Database
	DatabaseURL string
	// Collaborator data files
	RepliesFile       string
	BusinessFactsFile string
	ProductImagesFile string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:                getEnvDefault("PORT", "8080"),
		AllowedOrigin:       getEnvDefault("ALLOWED_ORIGIN", "*"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		Model:               getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		ConfidenceThreshold: getEnvFloatDefault("CONFIDENCE_THRESHOLD", 0.45),
		PageAccessToken:     os.Getenv("PAGE_ACCESS_TOKEN"),
		VerifyToken:         os.Getenv("VERIFY_TOKEN"),
		AppSecret:           os.Getenv("APP_SECRET"),
		DatabaseURL:         os.Getenv("DB_URL"),
		RepliesFile:         getEnvDefault("REPLIES_FILE", "configs/replies.yaml"),
		BusinessFactsFile:   getEnvDefault("BUSINESS_FACTS_FILE", "configs/business_facts.txt"),
		ProductImagesFile:   getEnvDefault("PRODUCT_IMAGES_FILE", "configs/product_images.yaml"),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; classifier calls will fail until provided")
	}
	if cfg.PageAccessToken == "" {
		log.Println("warning: PAGE_ACCESS_TOKEN is not set; outbound messages cannot be delivered")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloatDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("warning: invalid value for %s, using default %.2f", key, def)
	}
	return def
}
