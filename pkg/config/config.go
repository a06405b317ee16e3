package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	FirebaseApiKey  string
	Environment     string

	// Admin gate: server-enforced allow-list of admin emails.
	AdminEmails []string

	// Registration is restricted to these email domains.
	AllowedEmailDomains []string

	// Image hosting (Imgur) client credential.
	ImgurClientID string

	// Transactional email (EmailJS) credentials.
	EmailServiceID  string
	EmailTemplateID string
	EmailPublicKey  string

	// Push relay endpoint. Empty disables push.
	ExpoPushURL string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		FirebaseProject:     getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:      getEnv("FIREBASE_API_KEY", ""),
		Environment:         getEnv("ENVIRONMENT", "development"),
		AdminEmails:         getEnvAsList("ADMIN_EMAILS", "test@stu.jejunu.ac.kr,admin2@example.com"),
		AllowedEmailDomains: getEnvAsList("ALLOWED_EMAIL_DOMAINS", "stu.jejunu.ac.kr,jejunu.ac.kr"),
		ImgurClientID:       getEnv("IMGUR_CLIENT_ID", ""),
		EmailServiceID:      getEnv("EMAILJS_SERVICE_ID", ""),
		EmailTemplateID:     getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailPublicKey:      getEnv("EMAILJS_PUBLIC_KEY", ""),
		ExpoPushURL:         getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
