package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port   string
	AppEnv string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBDSN      string

	JWTKey    string
	JWTTTL    time.Duration
	SaltRound int

	CookieSecure bool
	CorsOrigins  string

	MediaRoot      string
	MediaURL       string
	StorageBackend string // local, supabase

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	SendgridAPIKey string
	EmailSender    string

	OEmbedEndpoint      string
	OrphanSweepSchedule string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from the .env file and environment variables
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = fromViper(newViper())

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "dev")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "educa")
	v.SetDefault("DB_DSN", "")

	v.SetDefault("JWT_SECRET_KEY", "defaultSecret")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("SALT_ROUND", 10)

	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("MEDIA_URL", "/media/")
	v.SetDefault("STORAGE_BACKEND", "local")

	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_KEY", "")
	v.SetDefault("SUPABASE_BUCKET", "uploads")

	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_SENDER", "noreply@localhost")

	v.SetDefault("OEMBED_ENDPOINT", "")
	v.SetDefault("ORPHAN_SWEEP_SCHEDULE", "")

	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) *Config {
	mediaURL := v.GetString("MEDIA_URL")
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}

	return &Config{
		Port:   v.GetString("PORT"),
		AppEnv: strings.ToLower(v.GetString("APP_ENV")),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBDSN:      v.GetString("DB_DSN"),

		JWTKey:    v.GetString("JWT_SECRET_KEY"),
		JWTTTL:    v.GetDuration("JWT_TTL"),
		SaltRound: v.GetInt("SALT_ROUND"),

		CookieSecure: v.GetBool("COOKIE_SECURE"),
		CorsOrigins:  v.GetString("CORS_ORIGINS"),

		MediaRoot:      v.GetString("MEDIA_ROOT"),
		MediaURL:       mediaURL,
		StorageBackend: strings.ToLower(v.GetString("STORAGE_BACKEND")),

		SupabaseURL:    strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseKey:    v.GetString("SUPABASE_KEY"),
		SupabaseBucket: v.GetString("SUPABASE_BUCKET"),

		SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
		EmailSender:    v.GetString("EMAIL_SENDER"),

		OEmbedEndpoint:      v.GetString("OEMBED_ENDPOINT"),
		OrphanSweepSchedule: v.GetString("ORPHAN_SWEEP_SCHEDULE"),
	}
}

// IsProduction reports whether the app runs with APP_ENV=prod
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}
