package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Remote booking service.
	APIBaseURL  string        `mapstructure:"API_BASE_URL"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	DeviceType  string        `mapstructure:"DEVICE_TYPE"`

	// Session store: "redis" or "memory".
	SessionBackend string `mapstructure:"SESSION_BACKEND"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking behaviour.
	LedgerPageSize   int           `mapstructure:"LEDGER_PAGE_SIZE"`
	StaffPageSize    int           `mapstructure:"STAFF_PAGE_SIZE"`
	ScanDebounce     time.Duration `mapstructure:"SCAN_DEBOUNCE"`
	ReminderLead     time.Duration `mapstructure:"REMINDER_LEAD"`
	RemindersEnabled bool          `mapstructure:"REMINDERS_ENABLED"`
	CoworkingLayouts string        `mapstructure:"COWORKING_LAYOUTS"`

	// Avatar storage: "remote" uploads through the booking service, "cloudinary"
	// and "firebase" upload directly.
	StorageDriver       string `mapstructure:"STORAGE_DRIVER"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
	FirebaseBucket      string `mapstructure:"FIREBASE_STORAGE_BUCKET"`

	// Firebase service account used for push notifications. Empty disables pushes.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	HealthCheckSpec string `mapstructure:"HEALTH_CHECK_SPEC"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real deployments inject the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("HTTP_TIMEOUT", 15*time.Second)
	v.SetDefault("DEVICE_TYPE", "android")
	v.SetDefault("SESSION_BACKEND", "redis")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 3)
	v.SetDefault("LEDGER_PAGE_SIZE", 20)
	v.SetDefault("STAFF_PAGE_SIZE", 500)
	v.SetDefault("SCAN_DEBOUNCE", 2*time.Second)
	v.SetDefault("REMINDER_LEAD", 15*time.Minute)
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("COWORKING_LAYOUTS", "")
	v.SetDefault("STORAGE_DRIVER", "remote")
	v.SetDefault("CLOUDINARY_FOLDER", "bookit/avatars")
	v.SetDefault("FIREBASE_STORAGE_BUCKET", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("HEALTH_CHECK_SPEC", "@every 30s")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// CORSOriginList splits the comma separated CORS_ORIGINS value.
func CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
