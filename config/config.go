package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBHost  string `json:"dbhost"`
	DBPort  uint16 `json:"dbport"`
	DBName  string `json:"dbname"`
	DBUSER  string `json:"dbuser"`
	DBPass  string `json:"dbpass"`

	// Upstream IAM backend
	FusionAuthURL    string `json:"fusionauth_url"`
	FusionAuthAPIKey string `json:"fusionauth_api_key"`

	// Webhook event store
	EventStore   string `json:"event_store"`
	EventDataDir string `json:"event_data_dir"`
	EventCap     int    `json:"event_cap"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// Load environment variables from .env file. A missing file is fine;
		// containerized deployments and tests set the environment directly.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		eventCap, _ := strconv.Atoi(os.Getenv("EVENT_CAP"))
		if eventCap <= 0 {
			eventCap = 500
		}
		dataDir := os.Getenv("EVENT_DATA_DIR")
		if dataDir == "" {
			dataDir = ".data"
		}

		// Initialize the Config struct with values from environment variables.
		config = &Config{
			AppName: os.Getenv("APPNAME"),
			AppEnv:  os.Getenv("APPENV"),
			AppPort: uint16(appPort),
			GinMode: os.Getenv("GINMODE"),
			DBHost:  os.Getenv("DBHOST"),
			DBPort:  uint16(dbPort),
			DBName:  os.Getenv("DBNAME"),
			DBUSER:  os.Getenv("DBUSER"),
			DBPass:  os.Getenv("DBPASS"),

			FusionAuthURL:    strings.TrimRight(os.Getenv("FUSIONAUTH_BASE_URL"), "/"),
			FusionAuthAPIKey: os.Getenv("FUSIONAUTH_API_KEY"),

			EventStore:   os.Getenv("EVENT_STORE"),
			EventDataDir: dataDir,
			EventCap:     eventCap,
		}
	})
	return config
}

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
// In the test environment an in-memory sqlite database is used instead so tests
// never need a running MySQL server.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()
	if cfg.AppEnv == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	// Open a database connection.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
