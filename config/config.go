package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	JWT      JWTConfig
	Store    StoreConfig
}

type ServerConfig struct {
	AppEnv         string
	HTTPPort       string
	GRPCPort       string
	AllowedOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// StorageConfig selects the key-value driver that backs the register's
// documents: memory, sqlite, mysql, postgres or redis.
type StorageConfig struct {
	Driver     string
	SQLitePath string
	MySQLDSN   string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	Topic           string
	ListenerEnabled bool
	StockTopic      string
	GroupID         string
}

type ElasticsearchConfig struct {
	Enabled   bool
	Addresses []string
	Username  string
	Password  string
	Index     string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type StoreConfig struct {
	Timezone         string
	SeedDemoData     bool
	BootstrapPIN     string
	TopProductsLimit int
	LocalesDir       string
}

func LoadEnv() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// A config file is optional; env vars win over it.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
	}

	return &Config{
		Server: ServerConfig{
			AppEnv:         v.GetString("APP_ENV"),
			HTTPPort:       v.GetString("HTTP_PORT"),
			GRPCPort:       v.GetString("GRPC_PORT"),
			AllowedOrigins: getSlice(v, "CORS_ALLOWED_ORIGINS"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("LOGGER_LEVEL"),
			Encoding:          v.GetString("LOGGER_ENCODING"),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
			SQLitePath: v.GetString("SQLITE_PATH"),
			MySQLDSN:   v.GetString("MYSQL_DSN"),
		},
		Postgres: PostgresConfig{
			Host:            v.GetString("POSTGRES_HOST"),
			Port:            v.GetString("POSTGRES_PORT"),
			User:            v.GetString("POSTGRES_USER"),
			Password:        v.GetString("POSTGRES_PASSWORD"),
			DBName:          v.GetString("POSTGRES_DB"),
			SSLMode:         v.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns:    v.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("POSTGRES_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetInt("POSTGRES_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetInt("POSTGRES_CONN_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Kafka: KafkaConfig{
			Enabled:         v.GetBool("KAFKA_ENABLED"),
			Brokers:         getSlice(v, "KAFKA_BROKERS"),
			Topic:           v.GetString("KAFKA_TOPIC_TRANSACTIONS"),
			ListenerEnabled: v.GetBool("KAFKA_LISTENER_ENABLED"),
			StockTopic:      v.GetString("KAFKA_TOPIC_STOCK"),
			GroupID:         v.GetString("KAFKA_GROUP_ID"),
		},
		Elastic: ElasticsearchConfig{
			Enabled:   v.GetBool("ELASTICSEARCH_ENABLED"),
			Addresses: getSlice(v, "ELASTICSEARCH_ADDRESSES"),
			Username:  v.GetString("ELASTICSEARCH_USERNAME"),
			Password:  v.GetString("ELASTICSEARCH_PASSWORD"),
			Index:     v.GetString("ELASTICSEARCH_PRODUCT_INDEX"),
		},
		JWT: JWTConfig{
			SecretKey: v.GetString("JWT_SECRET_KEY"),
			TTL:       v.GetDuration("JWT_TTL"),
		},
		Store: StoreConfig{
			Timezone:         v.GetString("STORE_TIMEZONE"),
			SeedDemoData:     v.GetBool("STORE_SEED_DEMO_DATA"),
			BootstrapPIN:     v.GetString("STORE_BOOTSTRAP_PIN"),
			TopProductsLimit: v.GetInt("STORE_TOP_PRODUCTS_LIMIT"),
			LocalesDir:       v.GetString("STORE_LOCALES_DIR"),
		},
	}
}

// Location resolves the store timezone, falling back to UTC.
func (c StoreConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_PORT", ":8080")
	v.SetDefault("GRPC_PORT", ":8082")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	v.SetDefault("LOGGER_LEVEL", "debug")
	v.SetDefault("LOGGER_ENCODING", "console")
	v.SetDefault("LOGGER_DISABLE_CALLER", false)
	v.SetDefault("LOGGER_DISABLE_STACKTRACE", true)

	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "omnipos-register.db")
	v.SetDefault("MYSQL_DSN", "")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5433")
	v.SetDefault("POSTGRES_USER", "omnipos")
	v.SetDefault("POSTGRES_PASSWORD", "omnipos")
	v.SetDefault("POSTGRES_DB", "omnipos_register")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_OPEN_CONNS", 10)
	v.SetDefault("POSTGRES_MAX_IDLE_CONNS", 5)
	v.SetDefault("POSTGRES_CONN_MAX_LIFETIME", 300)
	v.SetDefault("POSTGRES_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "omnipos:register:")

	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC_TRANSACTIONS", "register.transactions")
	v.SetDefault("KAFKA_LISTENER_ENABLED", false)
	v.SetDefault("KAFKA_TOPIC_STOCK", "inventory.stock")
	v.SetDefault("KAFKA_GROUP_ID", "omnipos-register")

	v.SetDefault("ELASTICSEARCH_ENABLED", false)
	v.SetDefault("ELASTICSEARCH_ADDRESSES", "http://localhost:9200")
	v.SetDefault("ELASTICSEARCH_USERNAME", "")
	v.SetDefault("ELASTICSEARCH_PASSWORD", "")
	v.SetDefault("ELASTICSEARCH_PRODUCT_INDEX", "register-products")

	v.SetDefault("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod")
	v.SetDefault("JWT_TTL", "10m")

	v.SetDefault("STORE_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("STORE_SEED_DEMO_DATA", true)
	v.SetDefault("STORE_BOOTSTRAP_PIN", "1234")
	v.SetDefault("STORE_TOP_PRODUCTS_LIMIT", 5)
	v.SetDefault("STORE_LOCALES_DIR", "")
}

func getSlice(v *viper.Viper, key string) []string {
	raw := v.GetString(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
