package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendFirebase = "firebase"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Firebase FirebaseConfig `yaml:"firebase"`
	Database DatabaseConfig `yaml:"database"`
	Mongo    MongoConfig    `yaml:"mongo"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port         int    `yaml:"port"`
	ImageBaseURL string `yaml:"image_base_url"`
}

type StoreConfig struct {
	Backend        string `yaml:"backend"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (s StoreConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// FirebaseConfig points the Admin SDK at a Realtime Database. Without a
// credentials file Application Default Credentials are used; with
// FIREBASE_DATABASE_EMULATOR_HOST set the SDK talks to the emulator instead.
type FirebaseConfig struct {
	DatabaseURL     string `yaml:"database_url"`
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN is the keyword/value connection string used by pgxpool
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

// MigrationURL is the golang-migrate URL for the pgx/v5 driver
func (d DatabaseConfig) MigrationURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Database,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 3000, ImageBaseURL: "/"},
		Store:  StoreConfig{Backend: BackendFirebase, TimeoutSeconds: 10},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "storefront",
			Password: "storefront",
			Database: "storefront",
			SSLMode:  "disable",
		},
		Mongo:    MongoConfig{URI: "mongodb://localhost:27017", Database: "storefront"},
		RabbitMQ: RabbitMQConfig{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the YAML file (a missing file leaves the defaults), loads .env
// if present and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envString(&c.Server.ImageBaseURL, "IMAGE_BASE_URL")
	envString(&c.Store.Backend, "STORE_BACKEND")
	envString(&c.Firebase.DatabaseURL, "FIREBASE_DATABASE_URL")
	envString(&c.Firebase.ProjectID, "FIREBASE_PROJECT_ID")
	envString(&c.Firebase.CredentialsFile, "FIREBASE_CREDENTIALS_FILE")

	envString(&c.Database.Host, "DB_HOST")
	envString(&c.Database.User, "DB_USER")
	envString(&c.Database.Password, "DB_PASSWORD")
	envString(&c.Database.Database, "DB_NAME")
	envString(&c.Database.SSLMode, "DB_SSLMODE")

	envString(&c.Mongo.URI, "MONGO_URI")
	envString(&c.Mongo.Database, "MONGO_DATABASE")

	envString(&c.RabbitMQ.Host, "RABBITMQ_HOST")
	envString(&c.RabbitMQ.User, "RABBITMQ_USER")
	envString(&c.RabbitMQ.Password, "RABBITMQ_PASSWORD")

	envString(&c.Log.Level, "LOG_LEVEL")

	if err := envInt(&c.Server.Port, "PORT"); err != nil {
		return err
	}
	if err := envInt(&c.Store.TimeoutSeconds, "STORE_TIMEOUT_SECONDS"); err != nil {
		return err
	}
	if err := envInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := envInt(&c.RabbitMQ.Port, "RABBITMQ_PORT"); err != nil {
		return err
	}
	return envBool(&c.RabbitMQ.Enabled, "RABBITMQ_ENABLED")
}

func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Store.TimeoutSeconds <= 0 {
		problems = append(problems, "store.timeout_seconds must be positive")
	}

	switch c.Store.Backend {
	case BackendFirebase:
		if c.Firebase.DatabaseURL == "" {
			problems = append(problems, "firebase.database_url is required for the firebase backend")
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.Database == "" {
			problems = append(problems, "database.host and database.database are required for the postgres backend")
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			problems = append(problems, "mongo.uri and mongo.database are required for the mongo backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown store.backend %q", c.Store.Backend))
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		problems = append(problems, "rabbitmq.host is required when rabbitmq is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	*dst = b
	return nil
}
